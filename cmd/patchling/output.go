package patchling

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patchling/patchling/pkg/config"
	"github.com/patchling/patchling/pkg/ui"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, pretty bool, v interface{}) error {
	switch format {
	case config.FormatJSON:
		var data []byte
		var err error
		if pretty {
			data, err = json.MarshalIndent(v, "", "  ")
		} else {
			data, err = json.Marshal(v)
		}
		if err != nil {
			return fmt.Errorf(MsgErrEncode, err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf(MsgErrEncode, err)
		}
		return enc.Close()
	default:
		return fmt.Errorf(MsgErrUnknownMode, format)
	}
}

// writeText writes s followed by exactly one newline.
func writeText(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(s, "\n"))
	return err
}

// themeFor returns the theme for w, with colour only on a terminal.
func themeFor(w io.Writer) ui.Theme {
	if f, ok := w.(*os.File); ok {
		return ui.ThemeFor(f)
	}
	return ui.NewTheme(w, false)
}

// renderTable writes a table with a header row.
func renderTable(w io.Writer, data pterm.TableData) error {
	if f, ok := w.(*os.File); !ok || !ui.DetectColor(f) {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithSeparator("  ").
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	return writeText(w, out)
}
