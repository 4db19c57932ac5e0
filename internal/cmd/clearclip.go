package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// clipboardWriter is replaced in tests.
var clipboardWriter = clipboard.WriteAll

// NewClearClipCmd creates the clearclip subcommand.
func NewClearClipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clearclip",
		Short: "Clear the system clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := clipboardWriter(""); err != nil {
				return fmt.Errorf("clear clipboard: %w", err)
			}
			return nil
		},
	}
}
