package patchling

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A mod compiler for Paradox games"
	MsgParseShort      = "Parse a PDX script file and print it"
	MsgResolveShort    = "Resolve rules across the game data and mods"
	MsgRootsShort      = "List the data roots of the compilation"
	MsgRootsLong       = "Roots lists the game data directory and every configured mod, highest priority first."
	MsgFilesShort      = "List the files a directory resolves to"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgVersionFormat = "patchling version %s\n  commit: %s\n  built:  %s\n"
	MsgNoFiles       = "No files found."
	MsgNoRules       = "No rules defined."
	MsgDefaultOrigin = "default"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrBuild       = "failed to initialize compiler: %w"
	MsgErrReadFile    = "failed to read %s: %w"
	MsgErrResolve     = "failed to resolve %s: %w"
	MsgErrEncode      = "failed to encode output: %w"
	MsgErrWorkingDir  = "failed to determine working directory: %w"
	MsgErrUnknownMode = "unknown output format %q"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProjectDir = "Project directory searched for patchling.toml (default is the working directory)"
	MsgFlagGameData   = "The directory that contains the base game data"
	MsgFlagSteamRoot  = "Steam installation searched for the game data"
	MsgFlagMod        = "Mod directory to compile (repeatable, highest priority first)"
	MsgFlagFormat     = "Output format: pdx, json or yaml"
	MsgFlagPretty     = "Indent output over multiple lines"
	MsgFlagBraces     = "Wrap pdx output in an outer brace pair"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/parse-long.txt
	msgParseLongRaw string
	MsgParseLong    = strings.TrimSpace(msgParseLongRaw)

	//go:embed msgs/parse-example.txt
	msgParseExampleRaw string
	MsgParseExample    = strings.TrimRight(msgParseExampleRaw, "\n")

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/files-long.txt
	msgFilesLongRaw string
	MsgFilesLong    = strings.TrimSpace(msgFilesLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
