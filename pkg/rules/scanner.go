package rules

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/paths"
	"github.com/patchling/patchling/pkg/types"
)

// ResolveFiles lists the files of `<root>/<directory>` whose names end with
// extension, for every root in order. Files of one root are listed by name.
// Roots without the directory contribute nothing.
func ResolveFiles(fsys types.FS, roots []DataRoot, directory, extension string) ([]ResolvedFile, error) {
	if err := paths.CheckNameSafe(directory); err != nil {
		return nil, err
	}
	if err := paths.CheckNameSafe(extension); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("rules.scanner")
	logger.Debug().
		Str("directory", directory).
		Str("extension", extension).
		Int("roots", len(roots)).
		Msg("Resolving files")

	var resolved []ResolvedFile
	for i, root := range roots {
		sourceMod := ""
		if root.IsMod {
			sourceMod = root.Name
		}

		dir := filepath.Join(root.RootDir, directory)
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logger.Debug().
					Str("root", root.Name).
					Str("path", dir).
					Msg("Data root has no such directory, skipping")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to read directory %s", dir).
				WithDetail("path", dir).
				WithDetail("root", root.Name)
		}

		for _, entry := range entries {
			name := entry.Name()
			if !entry.Type().IsRegular() || !strings.HasSuffix(name, extension) {
				continue
			}
			logger.Debug().
				Str("root", root.Name).
				Str("file", name).
				Msg("Found file in data root")
			resolved = append(resolved, ResolvedFile{
				SourceMod: sourceMod,
				FileName:  name,
				Path:      filepath.Join(dir, name),
				RootIndex: i,
			})
		}
	}

	logger.Debug().
		Str("directory", directory).
		Int("files", len(resolved)).
		Msg("File resolution complete")
	return resolved, nil
}
