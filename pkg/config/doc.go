// Package config handles configuration management for patchling.
// It layers configuration from embedded defaults, the user config file, the
// project config file, PATCHLING_* environment variables and command-line
// flag overrides, later sources winning.
package config
