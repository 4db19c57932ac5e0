package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/colors"
	"github.com/bytesized/utilities/labels"
)

// newLabelStore is replaced in tests.
var newLabelStore = labels.NewStore

// NewLabelCmd creates the label subcommand and its children.
func NewLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Name directories for quick navigation",
		Long: `Store short names for directories. The shell profile's goto function
changes to a labelled directory and its label function stores one.`,
	}
	cmd.AddCommand(newLabelSetCmd(), newLabelGetCmd(), newLabelRmCmd(), newLabelListCmd())
	return cmd
}

func newLabelSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME [DIR]",
		Short: "Point NAME at DIR (default: the current directory)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newLabelStore()
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}
			l, err := store.Set(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", labelStyle(l.Name).Render(l.Name), l.Dir)
			return nil
		},
	}
}

func newLabelGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the directory NAME points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newLabelStore()
			if err != nil {
				return err
			}
			dir, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newLabelRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME...",
		Aliases: []string{"remove"},
		Short:   "Remove labels",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newLabelStore()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := store.Remove(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newLabelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List labels",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newLabelStore()
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}
			width := 0
			for _, l := range all {
				width = max(width, len(l.Name))
			}
			for _, l := range all {
				name := labelStyle(l.Name).Width(width).Render(l.Name)
				missing := ""
				if _, err := os.Stat(l.Dir); err != nil {
					missing = " (missing)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s%s\n", name, l.Dir, missing)
			}
			return nil
		},
	}
}

// labelStyle colours a label name the same way every time.
func labelStyle(name string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Hash(name).String()))
}
