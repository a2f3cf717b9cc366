package types

import (
	"github.com/patchling/patchling/pkg/errors"
)

// Game identifies the game a mod is compiled for.
type Game uint8

const (
	// Stellaris is the only supported game.
	Stellaris Game = iota
)

type gameInfo struct {
	id          string
	displayName string
	steamName   string
}

var games = [...]gameInfo{
	Stellaris: {id: "stellaris", displayName: "Stellaris", steamName: "Stellaris"},
}

// Games returns every supported game.
func Games() []Game {
	out := make([]Game, len(games))
	for i := range games {
		out[i] = Game(i)
	}
	return out
}

// ParseGame parses the identifier used in configuration files ("stellaris").
func ParseGame(id string) (Game, error) {
	for i, g := range games {
		if g.id == id {
			return Game(i), nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown game %q", id).
		WithDetail("game", id)
}

func (g Game) info() gameInfo {
	if int(g) < len(games) {
		return games[g]
	}
	return gameInfo{id: "unknown", displayName: "Unknown", steamName: "Unknown"}
}

// ID returns the configuration identifier of the game.
func (g Game) ID() string { return g.info().id }

// DisplayName returns the human readable name of the game.
func (g Game) DisplayName() string { return g.info().displayName }

// SteamName returns the name of the steamapps/common directory the game is
// installed under.
func (g Game) SteamName() string { return g.info().steamName }

func (g Game) String() string { return g.ID() }

// MarshalText implements encoding.TextMarshaler.
func (g Game) MarshalText() ([]byte, error) {
	if int(g) >= len(games) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid game %d", uint8(g))
	}
	return []byte(g.ID()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Game) UnmarshalText(text []byte) error {
	parsed, err := ParseGame(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
