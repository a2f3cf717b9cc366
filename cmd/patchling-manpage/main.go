package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/patchling/patchling/cmd/patchling"
	"github.com/patchling/patchling/internal/version"
)

func main() {
	rootCmd := patchling.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PATCHLING",
		Section: "1",
		Source:  "patchling " + version.Version,
		Manual:  "patchling manual",
	}

	if len(os.Args) > 1 {
		// Write one page per command into the given directory.
		if err := doc.GenManTree(rootCmd, header, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
