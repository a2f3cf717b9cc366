// Package ui holds the terminal styling used by the patchling CLI.
//
// Styles are bound to a lipgloss renderer per output stream, so colour is
// decided by the stream they write to. Colour is disabled when NO_COLOR is
// set, when the stream is not a terminal, or when the terminal reports no
// colour support.
package ui
