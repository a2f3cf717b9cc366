// Package filesystem provides implementations of types.FS: the host OS
// filesystem, and any afero filesystem (used in tests with an in-memory tree).
package filesystem
