package types

import (
	"io/fs"
)

// FS is the read-only filesystem interface patchling reads game and mod
// data through.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// ReadDir returns the entries of a directory sorted by file name.
	ReadDir(name string) ([]fs.DirEntry, error)
}
