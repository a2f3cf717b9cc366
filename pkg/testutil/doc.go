// Package testutil provides filesystem fixtures for patchling tests.
//
// Key components:
//   - FileTree / NewTestFS: declarative in-memory game and mod data trees
//   - InstrumentedFS: a types.FS wrapper with error injection and call counts
//
// Test data is defined inline; every test builds its own tree.
package testutil
