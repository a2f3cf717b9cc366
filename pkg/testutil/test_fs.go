package testutil

import (
	"path/filepath"
	"testing"

	"github.com/patchling/patchling/pkg/filesystem"
	"github.com/patchling/patchling/pkg/types"
	"github.com/spf13/afero"
)

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// NewTestFS creates an in-memory filesystem holding tree under root.
func NewTestFS(t testing.TB, root string, tree FileTree) types.FS {
	t.Helper()
	mem := afero.NewMemMapFs()
	WriteTree(t, mem, root, tree)
	return filesystem.NewAferoFS(mem)
}

// WriteTree recursively creates tree under basePath.
func WriteTree(t testing.TB, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := afero.WriteFile(fs, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			WriteTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
