// Package types defines the small shared types used across patchling:
// the Game being compiled for and the filesystem interface the rest of the
// tree reads game and mod data through.
package types
