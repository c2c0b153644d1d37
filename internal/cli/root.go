// Package cli implements the aiornot command-line tool.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errSilentExit signals a non-zero exit where the diagnostic has already been
// printed (e.g. a batch with failed items after its JSONL was written).
var errSilentExit = errors.New("silent exit")

// Execute runs the CLI and exits the process with 1 on any failure.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the aiornot command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aiornot",
		Short: "Detect AI-generated content in images, videos, audio, and text",
		Long: "CLI for https://aiornot.com\n\n" +
			"Detect AI-generated content in images, videos, audio, and text.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImageCmd(),
		newVideoCmd(),
		newVoiceCmd(),
		newMusicCmd(),
		newTextCmd(),
		newBatchCmd(),
		newTokenCmd(),
	)
	return root
}
