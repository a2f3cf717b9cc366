package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/patchling/patchling/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for patchling
	EnvConfigDir = "PATCHLING_CONFIG_DIR"

	// EnvSteamRoot overrides the Steam installation root
	EnvSteamRoot = "PATCHLING_STEAM_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// DirName is the directory name patchling uses under XDG base directories
	DirName = "patchling"

	// UserConfigFile is the file name of the per-user configuration
	UserConfigFile = "config.toml"
)

// ConfigDir returns the XDG config directory for patchling
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, DirName)
}

// UserConfigPath returns the path of the per-user configuration file
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// SteamRoot returns the root directory of the local Steam installation.
func SteamRoot() (string, error) {
	if dir := os.Getenv(EnvSteamRoot); dir != "" {
		return ExpandHome(dir), nil
	}
	if runtime.GOOS != "linux" {
		return "", errors.New(errors.ErrGameDataNotFound, "Platform not currently supported.").
			WithDetail("os", runtime.GOOS)
	}
	if xdg.Home == "" {
		return "", errors.New(errors.ErrGameDataNotFound, "No home directory found.")
	}
	return filepath.Join(xdg.Home, ".steam", "steam"), nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := xdg.Home
	if homeDir == "" {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
