package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/paths"
)

// EnvPrefix is the prefix of environment variables read as configuration.
// A double underscore separates nesting levels: PATCHLING_OUTPUT__FORMAT
// sets output.format.
const EnvPrefix = "PATCHLING_"

// ProjectConfigFiles are the project config file names, in lookup order.
// Only the first one found is loaded.
var ProjectConfigFiles = []string{"patchling.toml", ".patchling.toml", "patchling.yaml", ".patchling.yaml"}

// LoadOptions selects the configuration sources.
type LoadOptions struct {
	// ProjectDir is searched for a project config file. Relative mod
	// directories are resolved against it. Defaults to ".".
	ProjectDir string
	// UserConfig is the user config file. Defaults to paths.UserConfigPath();
	// a missing file is skipped.
	UserConfig string
	// Overrides are applied last, keyed by dotted path ("output.format").
	Overrides map[string]interface{}
}

// LoadConfig loads and merges every configuration layer.
func LoadConfig(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}
	if opts.UserConfig == "" {
		opts.UserConfig = paths.UserConfigPath()
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if err := loadFileIfExists(k, opts.UserConfig); err != nil {
		return nil, err
	}

	// 3. Project config
	for _, filename := range ProjectConfigFiles {
		path := filepath.Join(opts.ProjectDir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := loadFileIfExists(k, path); err != nil {
				return nil, err
			}
			break
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}

	postProcessConfig(&cfg, opts.ProjectDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("game", cfg.Game.ID()).
		Str("game_data", cfg.GameData).
		Strs("mods", cfg.Mods).
		Str("resolver_mode", cfg.ResolverMode.String()).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var parser koanf.Parser = toml.Parser()
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// postProcessConfig expands ~ and resolves mod directories against the
// project directory.
func postProcessConfig(cfg *Config, projectDir string) {
	cfg.GameData = paths.ExpandHome(cfg.GameData)
	cfg.SteamRoot = paths.ExpandHome(cfg.SteamRoot)

	for i, mod := range cfg.Mods {
		mod = paths.ExpandHome(strings.TrimSpace(mod))
		if mod != "" && !filepath.IsAbs(mod) {
			mod = filepath.Join(projectDir, mod)
		}
		cfg.Mods[i] = mod
	}
}
