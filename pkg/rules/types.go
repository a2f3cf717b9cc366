package rules

import (
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/pdx"
)

// VanillaName is the display name of the base game data root.
const VanillaName = "Vanilla Game Data"

// NoOrigin is the origin of rules no data root defined.
const NoOrigin = -1

// DataRoot is one source of game data.
type DataRoot struct {
	IsMod   bool   `json:"is_mod" yaml:"is_mod"`
	Name    string `json:"name" yaml:"name"`
	RootDir string `json:"root_dir" yaml:"root_dir"`
}

// Vanilla returns the data root of the base game installed at rootDir.
func Vanilla(rootDir string) DataRoot {
	return DataRoot{IsMod: false, Name: VanillaName, RootDir: rootDir}
}

// ModData returns the data root of a mod.
func ModData(name, rootDir string) DataRoot {
	return DataRoot{IsMod: true, Name: name, RootDir: rootDir}
}

// ResolverMode selects how a resolver treats rules, including which
// DefaultPolicy it uses.
type ResolverMode uint8

const (
	// Simple resolvers materialize undefined rules as `name = { }`.
	Simple ResolverMode = iota
)

var resolverModeNames = [...]string{
	Simple: "simple",
}

func (m ResolverMode) String() string {
	if int(m) < len(resolverModeNames) {
		return resolverModeNames[m]
	}
	return "unknown"
}

// DefaultPolicy returns the default policy of the mode.
func (m ResolverMode) DefaultPolicy() DefaultPolicy {
	return RuleEquals
}

// ParseResolverMode parses a mode name ("simple").
func ParseResolverMode(name string) (ResolverMode, error) {
	for i, n := range resolverModeNames {
		if n == name {
			return ResolverMode(i), nil
		}
	}
	return Simple, errors.Newf(errors.ErrInvalidInput, "unknown resolver mode %q", name).
		WithDetail("mode", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m ResolverMode) MarshalText() ([]byte, error) {
	if int(m) >= len(resolverModeNames) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid resolver mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ResolverMode) UnmarshalText(text []byte) error {
	parsed, err := ParseResolverMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ResolvedFile is one file found by ResolveFiles.
type ResolvedFile struct {
	// SourceMod is the name of the mod the file comes from, empty for vanilla.
	SourceMod string `json:"source_mod,omitempty" yaml:"source_mod,omitempty"`
	FileName  string `json:"file_name" yaml:"file_name"`
	Path      string `json:"path" yaml:"path"`
	RootIndex int    `json:"root" yaml:"root"`
}

// Rule is the materialized value of one rule as exposed to scripts.
type Rule struct {
	Name     string       `json:"name" yaml:"name"`
	Relation pdx.Relation `json:"relation" yaml:"relation"`
	// Origin is the index of the data root that defined the rule, or NoOrigin.
	Origin int `json:"origin" yaml:"origin"`
}
