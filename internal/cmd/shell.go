package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/installer"
)

// NewShellCmd creates the shell subcommand.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Shell integration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Print the bash profile the installer sets up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), installer.Profile())
			return err
		},
	})
	return cmd
}
