// Package paths provides path handling for patchling.
//
// It covers three concerns:
//
//   - Safe-name validation for the directory and extension parameters of
//     rule queries (CheckNameSafe)
//   - XDG locations for patchling's own files (ConfigDir, UserConfigPath)
//   - Discovery of installed game data through Steam library folders
//     (SteamRoot, LibraryFolders, FindGameData)
//
// # Environment Variables
//
//   - PATCHLING_CONFIG_DIR: Override the XDG config directory (default: $XDG_CONFIG_HOME/patchling)
//   - PATCHLING_STEAM_ROOT: Override the Steam installation root (default: ~/.steam/steam)
//
// # Usage
//
//	if err := paths.CheckNameSafe("events"); err != nil {
//	    return err
//	}
//
//	root, err := paths.SteamRoot()
//	if err != nil {
//	    return err
//	}
//	dirs, err := paths.FindGameData(fsys, root, types.Stellaris)
package paths
