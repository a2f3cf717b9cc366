package patchling

import (
	"embed"
	"io/fs"

	"github.com/patchling/patchling/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// installTopics adds the embedded help topics to rootCmd.
func installTopics(rootCmd *cobra.Command, renderer topics.Renderer) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	m, err := topics.Load(sub, topics.Options{Renderer: renderer})
	if err != nil {
		return err
	}
	topics.Install(rootCmd, m)
	return nil
}

// topicRenderer renders markdown with glamour on a terminal and returns it
// unchanged otherwise.
func topicRenderer() topics.Renderer {
	if !stdoutIsTerminal() {
		return &topics.PlainRenderer{}
	}
	return topics.NewGlamourRenderer()
}
