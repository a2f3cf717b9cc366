package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/patchling/patchling/pkg/errors"
)

// Theme is the set of styles used for one output stream.
type Theme struct {
	Title   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Key     lipgloss.Style
	Origin  lipgloss.Style
}

// DetectColor reports whether colour output should be used on f.
func DetectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}

// NewTheme returns styles rendering to w. When color is false every style
// renders its text unchanged.
func NewTheme(w io.Writer, color bool) Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return Theme{
		Title: r.NewStyle().
			Foreground(HeadingColor).
			Bold(true),
		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(WarningColor),
		Muted: r.NewStyle().
			Foreground(MutedColor),
		Path: r.NewStyle().
			Foreground(SecondaryColor).
			Italic(true),
		Key: r.NewStyle().
			Foreground(PrimaryColor),
		Origin: r.NewStyle().
			Foreground(MutedColor).
			Italic(true),
	}
}

// ThemeFor returns the theme for f with colour detected from f.
func ThemeFor(f *os.File) Theme {
	return NewTheme(f, DetectColor(f))
}

// FormatError renders err for display. Details of coded errors are listed
// below the message in key order.
func (t Theme) FormatError(err error) string {
	var b strings.Builder
	b.WriteString(t.Error.Render("Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	details := errors.GetErrorDetails(err)
	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("\n  ")
			b.WriteString(t.Muted.Render(fmt.Sprintf("%s: %v", k, details[k])))
		}
	}
	return b.String()
}
