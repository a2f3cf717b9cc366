package config

import (
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/patchling/patchling/pkg/types"
)

// Output formats for rendered PDX data.
const (
	FormatPDX  = "pdx"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the merged configuration of a patchling run.
type Config struct {
	Game         types.Game         `koanf:"game"`
	GameData     string             `koanf:"game_data"`
	SteamRoot    string             `koanf:"steam_root"`
	Mods         []string           `koanf:"mods"`
	ResolverMode rules.ResolverMode `koanf:"resolver_mode"`
	Output       OutputConfig       `koanf:"output"`
}

// OutputConfig controls how PDX data is printed.
type OutputConfig struct {
	Format string `koanf:"format"`
	Pretty bool   `koanf:"pretty"`
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatPDX, FormatJSON, FormatYAML:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"output.format must be one of pdx, json or yaml, got %q", c.Output.Format).
			WithDetail("key", "output.format")
	}

	for i, mod := range c.Mods {
		if mod == "" {
			return errors.Newf(errors.ErrConfigValid, "mods[%d] is empty", i).
				WithDetail("key", "mods")
		}
	}
	return nil
}
