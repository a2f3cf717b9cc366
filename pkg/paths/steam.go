package paths

import (
	"bytes"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/types"
)

// Files and directories every installed copy of a Paradox game has.
var gameDataMarkers = []string{"checksum_manifest.txt", "tweakergui_assets", "common"}

// ParseLibraryFolders extracts library paths from the contents of
// steamapps/libraryfolders.vdf, ordered by library number. Both the numbered
// `"1" "/path"` entries and the `"1" { "path" "/path" }` blocks of newer Steam
// clients are recognised.
func ParseLibraryFolders(data []byte) ([]string, error) {
	doc, err := vdf.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "failed to parse Steam library folders")
	}

	var root map[string]interface{}
	for key, value := range doc {
		if strings.EqualFold(key, "libraryfolders") {
			root, _ = value.(map[string]interface{})
			break
		}
	}

	type library struct {
		index uint64
		path  string
	}
	var libraries []library
	for key, value := range root {
		index, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			continue
		}
		switch v := value.(type) {
		case string:
			libraries = append(libraries, library{index, v})
		case map[string]interface{}:
			if path, ok := v["path"].(string); ok {
				libraries = append(libraries, library{index, path})
			}
		}
	}
	sort.Slice(libraries, func(i, j int) bool { return libraries[i].index < libraries[j].index })

	folders := make([]string, 0, len(libraries))
	for _, l := range libraries {
		folders = append(folders, l.path)
	}
	return folders, nil
}

// LibraryFolders returns the Steam library folders listed under steamRoot,
// followed by steamRoot itself.
func LibraryFolders(fsys types.FS, steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")

	var folders []string
	if exists(fsys, vdfPath) {
		data, err := fsys.ReadFile(vdfPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", vdfPath).
				WithDetail("path", vdfPath)
		}
		folders, err = ParseLibraryFolders(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "failed to parse %s", vdfPath).
				WithDetail("path", vdfPath)
		}
	}

	for _, f := range folders {
		if filepath.Clean(f) == filepath.Clean(steamRoot) {
			return folders, nil
		}
	}
	return append(folders, steamRoot), nil
}

// FindGameData returns every installed data directory of game found in the
// Steam libraries under steamRoot, in library order.
func FindGameData(fsys types.FS, steamRoot string, game types.Game) ([]string, error) {
	logger := logging.GetLogger("paths.steam")
	logger.Debug().Str("steam_root", steamRoot).Msg("Finding game data directory")

	libraries, err := LibraryFolders(fsys, steamRoot)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, library := range libraries {
		candidate := filepath.Join(library, "steamapps", "common", game.SteamName())
		logger.Debug().Str("library", library).Str("candidate", candidate).Msg("Checking library path")
		if !isGameData(fsys, candidate) {
			continue
		}
		found = append(found, candidate)
	}

	logger.Debug().Strs("found", found).Msg("Game data search complete")
	return found, nil
}

func isGameData(fsys types.FS, dir string) bool {
	if !exists(fsys, dir) {
		return false
	}
	for _, marker := range gameDataMarkers {
		if !exists(fsys, filepath.Join(dir, marker)) {
			return false
		}
	}
	return true
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
