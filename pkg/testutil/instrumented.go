package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/patchling/patchling/pkg/types"
)

// InstrumentedFS wraps a types.FS, counting calls and returning injected
// errors for configured paths.
type InstrumentedFS struct {
	inner types.FS

	mu         sync.Mutex
	errorPaths map[string]error
	readErrors map[string]error
	calls      int
}

// NewInstrumentedFS wraps inner.
func NewInstrumentedFS(inner types.FS) *InstrumentedFS {
	return &InstrumentedFS{
		inner:      inner,
		errorPaths: make(map[string]error),
		readErrors: make(map[string]error),
	}
}

// WithError configures the filesystem to return an error for a specific path
func (f *InstrumentedFS) WithError(path string, err error) *InstrumentedFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorPaths[filepath.Clean(path)] = err
	return f
}

// WithReadError makes ReadFile and ReadDir fail for path while Stat still
// succeeds.
func (f *InstrumentedFS) WithReadError(path string, err error) *InstrumentedFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErrors[filepath.Clean(path)] = err
	return f
}

// Calls returns the number of filesystem operations performed so far.
func (f *InstrumentedFS) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *InstrumentedFS) record(name string, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	name = filepath.Clean(name)
	if err, ok := f.errorPaths[name]; ok {
		return err
	}
	if read {
		return f.readErrors[name]
	}
	return nil
}

func (f *InstrumentedFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.record(name, false); err != nil {
		return nil, err
	}
	return f.inner.Stat(name)
}

func (f *InstrumentedFS) ReadFile(name string) ([]byte, error) {
	if err := f.record(name, true); err != nil {
		return nil, err
	}
	return f.inner.ReadFile(name)
}

func (f *InstrumentedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.record(name, true); err != nil {
		return nil, err
	}
	return f.inner.ReadDir(name)
}
