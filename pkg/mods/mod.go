package mods

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/paths"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/patchling/patchling/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// DescriptorFile is the name of the descriptor in a mod directory.
const DescriptorFile = "mod.toml"

// ModInfo describes a mod from its descriptor.
type ModInfo struct {
	ID         string     `toml:"id" json:"id" yaml:"id"`
	Name       string     `toml:"name" json:"name" yaml:"name"`
	Game       types.Game `toml:"game" json:"game" yaml:"game"`
	CopyDirs   []string   `toml:"copy_dirs" json:"copy_dirs" yaml:"copy_dirs"`
	SourceDirs []string   `toml:"source_dirs" json:"source_dirs" yaml:"source_dirs"`
	LibDirs    []string   `toml:"lib_dirs" json:"lib_dirs" yaml:"lib_dirs"`

	// Root is the mod directory. It is not read from the descriptor.
	Root string `toml:"-" json:"root" yaml:"root"`
	// IsLoaded is set once the mod's files have been listed by Load.
	IsLoaded bool `toml:"-" json:"is_loaded" yaml:"is_loaded"`
}

// CopyFile is one file copied verbatim into the compiled mod.
type CopyFile struct {
	// Name is the slash-separated path relative to its copy directory.
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// LoadedMod is a mod with every contributed file listed.
type LoadedMod struct {
	Info        ModInfo    `json:"info" yaml:"info"`
	CopyFiles   []CopyFile `json:"copy_files" yaml:"copy_files"`
	SourceFiles []string   `json:"source_files" yaml:"source_files"`
	LibPaths    []string   `json:"lib_paths" yaml:"lib_paths"`
}

// DataRoot returns the data root the mod contributes to rule resolution.
func (m ModInfo) DataRoot() rules.DataRoot {
	return rules.ModData(m.DisplayName(), m.Root)
}

// DisplayName returns Name, or ID when the descriptor has no name.
func (m ModInfo) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// LoadModInfo reads and validates the descriptor of the mod in dir.
func LoadModInfo(fsys types.FS, dir string) (ModInfo, error) {
	descriptor := filepath.Join(dir, DescriptorFile)
	logger := logging.GetLogger("mods").With().Str("descriptor", descriptor).Logger()

	data, err := fsys.ReadFile(descriptor)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return ModInfo{}, errors.Wrapf(err, errors.ErrModInvalid, "%s has no %s", dir, DescriptorFile).
				WithDetail("path", descriptor)
		}
		return ModInfo{}, errors.Wrapf(err, errors.ErrIO, "failed to read %s", descriptor).
			WithDetail("path", descriptor)
	}

	var info ModInfo
	if err := toml.Unmarshal(data, &info); err != nil {
		return ModInfo{}, errors.Wrapf(err, errors.ErrModInvalid, "failed to parse %s", descriptor).
			WithDetail("path", descriptor)
	}
	info.Root = dir

	if err := info.Validate(); err != nil {
		return ModInfo{}, err
	}

	logger.Debug().
		Str("id", info.ID).
		Str("game", info.Game.ID()).
		Int("copy_dirs", len(info.CopyDirs)).
		Int("source_dirs", len(info.SourceDirs)).
		Int("lib_dirs", len(info.LibDirs)).
		Msg("Mod descriptor loaded")
	return info, nil
}

// Validate checks the descriptor fields.
func (m ModInfo) Validate() error {
	if m.ID == "" {
		return errors.New(errors.ErrModInvalid, "mod id cannot be empty").
			WithDetail("root", m.Root)
	}
	if err := paths.CheckNameSafe(m.ID); err != nil {
		return errors.Wrapf(err, errors.ErrModInvalid, "invalid mod id %q", m.ID).
			WithDetail("root", m.Root)
	}

	for _, group := range [][]string{m.CopyDirs, m.SourceDirs, m.LibDirs} {
		for _, dir := range group {
			if !filepath.IsLocal(dir) {
				return errors.Newf(errors.ErrModInvalid,
					"mod %s: directory %q must be relative to the mod directory", m.ID, dir).
					WithDetail("dir", dir)
			}
		}
	}
	return nil
}

// Load lists the files the mod contributes. Missing directories contribute
// nothing.
func Load(fsys types.FS, info ModInfo) (LoadedMod, error) {
	logger := logging.GetLogger("mods").With().Str("mod", info.ID).Logger()
	loaded := LoadedMod{Info: info}
	loaded.Info.IsLoaded = true

	for _, dir := range info.CopyDirs {
		base := filepath.Join(info.Root, dir)
		files, err := walkFiles(fsys, base)
		if err != nil {
			return LoadedMod{}, err
		}
		for _, f := range files {
			rel, err := filepath.Rel(base, f)
			if err != nil {
				return LoadedMod{}, errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", f)
			}
			loaded.CopyFiles = append(loaded.CopyFiles, CopyFile{Name: filepath.ToSlash(rel), Path: f})
		}
	}

	for _, dir := range info.SourceDirs {
		files, err := walkFiles(fsys, filepath.Join(info.Root, dir))
		if err != nil {
			return LoadedMod{}, err
		}
		loaded.SourceFiles = append(loaded.SourceFiles, files...)
	}

	for _, dir := range info.LibDirs {
		lib := filepath.Join(info.Root, dir)
		if _, err := fsys.Stat(lib); err != nil {
			logger.Debug().Str("path", lib).Msg("Library directory missing, skipping")
			continue
		}
		loaded.LibPaths = append(loaded.LibPaths, lib)
	}

	logger.Debug().
		Int("copy_files", len(loaded.CopyFiles)).
		Int("source_files", len(loaded.SourceFiles)).
		Int("lib_paths", len(loaded.LibPaths)).
		Msg("Mod loaded")
	return loaded, nil
}

// walkFiles returns every regular file under dir, depth first in name order.
func walkFiles(fsys types.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read directory %s", dir).
			WithDetail("path", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			sub, err := walkFiles(fsys, path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		case entry.Type().IsRegular():
			files = append(files, path)
		}
	}
	return files, nil
}
