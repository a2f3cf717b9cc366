package compiler

import (
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/filesystem"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/mods"
	"github.com/patchling/patchling/pkg/paths"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/patchling/patchling/pkg/types"
)

// Compiler is a configured compilation.
type Compiler struct {
	game     types.Game
	gameData string
	fs       types.FS
	rules    *rules.RulesManager
	mods     []mods.LoadedMod
}

// New builds a compiler with default settings, discovering the game data
// through Steam.
func New(game types.Game) (*Compiler, error) {
	return NewBuilder(game).Build()
}

// Game returns the game being compiled for.
func (c *Compiler) Game() types.Game { return c.game }

// GameData returns the vanilla game data directory in use.
func (c *Compiler) GameData() string { return c.gameData }

// FS returns the filesystem the compilation reads through.
func (c *Compiler) FS() types.FS { return c.fs }

// Rules returns the rules manager holding every data root.
func (c *Compiler) Rules() *rules.RulesManager { return c.rules }

// Mods returns the loaded mods in priority order.
func (c *Compiler) Mods() []mods.LoadedMod {
	out := make([]mods.LoadedMod, len(c.mods))
	copy(out, c.mods)
	return out
}

// Builder configures a Compiler.
type Builder struct {
	game      types.Game
	gameData  string
	steamRoot string
	modDirs   []string
	fs        types.FS
	host      ScriptHost
}

// NewBuilder returns a builder for game.
func NewBuilder(game types.Game) *Builder {
	return &Builder{game: game}
}

// GameData sets the game data directory explicitly, skipping discovery.
func (b *Builder) GameData(path string) *Builder {
	b.gameData = path
	return b
}

// SteamRoot sets the Steam installation searched when no game data
// directory is given.
func (b *Builder) SteamRoot(path string) *Builder {
	b.steamRoot = path
	return b
}

// Mod adds a mod directory. Mods added later have lower priority.
func (b *Builder) Mod(dir string) *Builder {
	b.modDirs = append(b.modDirs, dir)
	return b
}

// FS sets the filesystem to read through. It defaults to the OS filesystem.
func (b *Builder) FS(fsys types.FS) *Builder {
	b.fs = fsys
	return b
}

// ScriptHost sets the runtime the rules manager is registered with.
func (b *Builder) ScriptHost(host ScriptHost) *Builder {
	b.host = host
	return b
}

// Build resolves the game data, loads every mod and creates the rules
// manager.
func (b *Builder) Build() (*Compiler, error) {
	logger := logging.GetLogger("compiler")
	fsys := b.fs
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	gameData, err := b.resolveGameData(fsys)
	if err != nil {
		return nil, err
	}

	loaded := make([]mods.LoadedMod, 0, len(b.modDirs))
	seen := make(map[string]string, len(b.modDirs))
	for _, dir := range b.modDirs {
		info, err := mods.LoadModInfo(fsys, dir)
		if err != nil {
			return nil, err
		}
		if info.Game != b.game {
			return nil, errors.Newf(errors.ErrModInvalid,
				"mod %q targets %s, not %s", info.ID, info.Game.DisplayName(), b.game.DisplayName()).
				WithDetail("mod", info.ID).
				WithDetail("game", info.Game.ID())
		}
		if prev, ok := seen[info.ID]; ok {
			return nil, errors.Newf(errors.ErrModInvalid,
				"mod %q is added twice (%s and %s)", info.ID, prev, dir).
				WithDetail("mod", info.ID)
		}
		seen[info.ID] = dir

		mod, err := mods.Load(fsys, info)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, mod)
	}

	manager := rules.NewRulesManager(b.game, fsys)
	manager.AddDataRoot(rules.Vanilla(gameData))
	for _, mod := range loaded {
		manager.AddDataRoot(mod.Info.DataRoot())
	}

	if b.host != nil {
		logger.Debug().Str("module", RulesModule).Msg("Registering script module")
		if err := b.host.RegisterModule(RulesModule, manager); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal,
				"failed to register %q module", RulesModule).
				WithDetail("module", RulesModule)
		}
	}

	logger.Debug().
		Str("game", b.game.ID()).
		Str("game_data", gameData).
		Int("mods", len(loaded)).
		Msg("Compiler initialized")

	return &Compiler{
		game:     b.game,
		gameData: gameData,
		fs:       fsys,
		rules:    manager,
		mods:     loaded,
	}, nil
}

func (b *Builder) resolveGameData(fsys types.FS) (string, error) {
	logger := logging.GetLogger("compiler")

	if b.gameData != "" {
		info, err := fsys.Stat(b.gameData)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ErrGameDataNotFound,
				"game data directory %s does not exist", b.gameData).
				WithDetail("path", b.gameData)
		}
		logger.Debug().Str("game_data", b.gameData).Msg("Game data (explicitly set)")
		return b.gameData, nil
	}

	steamRoot := b.steamRoot
	if steamRoot == "" {
		root, err := paths.SteamRoot()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrGameDataNotFound,
				"Could not find game data directory. Please explicitly set it using --game-data.")
		}
		steamRoot = root
	}

	candidates, err := paths.FindGameData(fsys, steamRoot, b.game)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", errors.New(errors.ErrGameDataNotFound,
			"Could not find game data directory. Please explicitly set it using --game-data.").
			WithDetail("steam_root", steamRoot)
	}
	logger.Debug().
		Str("game_data", candidates[0]).
		Int("candidates", len(candidates)).
		Msg("Game data (discovered)")
	return candidates[0], nil
}
