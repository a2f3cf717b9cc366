package patchling

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/patchling/patchling/internal/version"
	"github.com/patchling/patchling/pkg/compiler"
	"github.com/patchling/patchling/pkg/config"
	"github.com/patchling/patchling/pkg/filesystem"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	verbosity  int
	projectDir string
	gameData   string
	steamRoot  string
	mods       []string
	format     string
	pretty     bool
}

// session is the state a command runs with once configuration is loaded.
type session struct {
	flags globalFlags
	cfg   *config.Config
	fs    types.FS
}

// overrides returns the config keys set explicitly on the command line.
func (s *session) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	flags := cmd.Flags()
	out := make(map[string]interface{})
	if flags.Changed("game-data") {
		out["game_data"] = s.flags.gameData
	}
	if flags.Changed("steam-root") {
		out["steam_root"] = s.flags.steamRoot
	}
	if flags.Changed("mod") {
		mods := make([]interface{}, 0, len(s.flags.mods))
		for _, m := range s.flags.mods {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, fmt.Errorf(MsgErrWorkingDir, err)
			}
			mods = append(mods, abs)
		}
		out["mods"] = mods
	}
	if flags.Changed("format") {
		out["output.format"] = s.flags.format
	}
	if flags.Changed("pretty") {
		out["output.pretty"] = s.flags.pretty
	}
	return out, nil
}

func (s *session) load(cmd *cobra.Command) error {
	overrides, err := s.overrides(cmd)
	if err != nil {
		return err
	}

	projectDir := s.flags.projectDir
	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf(MsgErrWorkingDir, err)
		}
	}

	cfg, err := config.LoadConfig(config.LoadOptions{
		ProjectDir: projectDir,
		Overrides:  overrides,
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	s.cfg = cfg
	return nil
}

// compiler builds a compiler from the loaded configuration.
func (s *session) compiler() (*compiler.Compiler, error) {
	b := compiler.NewBuilder(s.cfg.Game).
		FS(s.fs).
		GameData(s.cfg.GameData).
		SteamRoot(s.cfg.SteamRoot)
	for _, mod := range s.cfg.Mods {
		b.Mod(mod)
	}

	c, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf(MsgErrBuild, err)
	}
	return c, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewReadOnlyOS())
}

func newRootCmd(fsys types.FS) *cobra.Command {
	initTemplateFormatting()

	s := &session{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "patchling",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(s.flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if cmd.Annotations["config"] == "skip" {
				return nil
			}
			return s.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&s.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&s.flags.projectDir, "project-dir", "C", "", MsgFlagProjectDir)
	pf.StringVar(&s.flags.gameData, "game-data", "", MsgFlagGameData)
	pf.StringVar(&s.flags.steamRoot, "steam-root", "", MsgFlagSteamRoot)
	pf.StringArrayVar(&s.flags.mods, "mod", nil, MsgFlagMod)
	pf.StringVarP(&s.flags.format, "format", "f", config.FormatPDX, MsgFlagFormat)
	pf.BoolVar(&s.flags.pretty, "pretty", true, MsgFlagPretty)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatPDX, config.FormatJSON, config.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newParseCmd(s))
	rootCmd.AddCommand(newResolveCmd(s))
	rootCmd.AddCommand(newRootsCmd(s))
	rootCmd.AddCommand(newFilesCmd(s))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd, topicRenderer()); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Annotations: map[string]string{"config": "skip"},
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		Annotations:           map[string]string{"config": "skip"},
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
