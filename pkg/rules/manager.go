package rules

import (
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/paths"
	"github.com/patchling/patchling/pkg/pdx"
	"github.com/patchling/patchling/pkg/types"
)

type resolverKey struct {
	directory string
	extension string
	mode      ResolverMode
}

// RulesManager owns the ordered data roots of a compilation and the
// resolvers built from them.
type RulesManager struct {
	game      types.Game
	fs        types.FS
	roots     []DataRoot
	resolvers map[resolverKey]*ResolvedRules
}

// NewRulesManager creates a manager reading game data through fsys.
func NewRulesManager(game types.Game, fsys types.FS) *RulesManager {
	return &RulesManager{
		game:      game,
		fs:        fsys,
		resolvers: make(map[resolverKey]*ResolvedRules),
	}
}

// Game returns the game being compiled for.
func (m *RulesManager) Game() types.Game {
	return m.game
}

// AddDataRoot appends a data root with lower priority than every root added
// before it. Cached resolvers are dropped since they no longer cover every
// root.
func (m *RulesManager) AddDataRoot(root DataRoot) {
	logger := logging.GetLogger("rules.manager")
	logger.Debug().
		Str("name", root.Name).
		Str("path", root.RootDir).
		Bool("mod", root.IsMod).
		Int("index", len(m.roots)).
		Msg("Adding data root")

	m.roots = append(m.roots, root)
	if len(m.resolvers) > 0 {
		logger.Debug().Int("resolvers", len(m.resolvers)).Msg("Dropping cached resolvers")
		m.resolvers = make(map[resolverKey]*ResolvedRules)
	}
}

// DataRoots returns the data roots in priority order.
func (m *RulesManager) DataRoots() []DataRoot {
	out := make([]DataRoot, len(m.roots))
	copy(out, m.roots)
	return out
}

// GetResolver returns the resolved rules of every file under
// `<root>/<directory>` ending in extension, building them on first request.
//
// directory and extension are validated with paths.CheckNameSafe before
// any filesystem access. A failed build returns its error and caches
// nothing.
func (m *RulesManager) GetResolver(directory, extension string, mode ResolverMode) (*ResolvedRules, error) {
	if err := paths.CheckNameSafe(directory); err != nil {
		return nil, err
	}
	if err := paths.CheckNameSafe(extension); err != nil {
		return nil, err
	}

	key := resolverKey{directory: directory, extension: extension, mode: mode}
	if rr, ok := m.resolvers[key]; ok {
		return rr, nil
	}

	rr, err := m.build(directory, extension, mode)
	if err != nil {
		return nil, err
	}
	m.resolvers[key] = rr
	return rr, nil
}

func (m *RulesManager) build(directory, extension string, mode ResolverMode) (*ResolvedRules, error) {
	logger := logging.GetLogger("rules.manager")
	done := logging.LogOperationStart(logger, "build resolver "+directory+"/*"+extension)
	defer done()

	files, err := ResolveFiles(m.fs, m.roots, directory, extension)
	if err != nil {
		return nil, err
	}

	rr := NewResolvedRules(directory, mode.DefaultPolicy())
	for _, file := range files {
		data, err := m.fs.ReadFile(file.Path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", file.Path).
				WithDetail("path", file.Path)
		}

		block, err := pdx.Parse(file.Path, data)
		if err != nil {
			return nil, err
		}

		for _, rel := range block.Relations() {
			rr.AddRuleFromSources(file.RootIndex, rel.Tag, rel)
		}
		logger.Trace().
			Str("file", file.Path).
			Int("root", file.RootIndex).
			Int("rules", rr.Len()).
			Msg("Folded file into resolver")
	}
	rr.FinishInit()

	logger.Info().
		Str("directory", directory).
		Str("extension", extension).
		Str("mode", mode.String()).
		Int("files", len(files)).
		Int("rules", rr.Len()).
		Msg("Resolver built")
	return rr, nil
}
