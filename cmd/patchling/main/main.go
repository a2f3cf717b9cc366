package main

import (
	"fmt"
	"os"

	"github.com/patchling/patchling/cmd/patchling"
	"github.com/patchling/patchling/pkg/ui"
)

func main() {
	rootCmd := patchling.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		theme := ui.ThemeFor(os.Stderr)
		fmt.Fprintln(os.Stderr, theme.FormatError(err))
		os.Exit(1)
	}
}
