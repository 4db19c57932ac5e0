package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/colors"
)

// NewColorsCmd creates the colors subcommand (bcolors) and its children.
func NewColorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Explore terminal colors and build escape sequences",
		Long: `Show the colors the terminal supports and build the escape sequences that
select them. Colors are names (red, bright-blue), palette indexes (0-255)
or #rrggbb.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return colors.WriteChart(cmd.OutOrStdout())
		},
	}
	cmd.AddCommand(newColorsChartCmd(), newColorsCodeCmd(), newColorsPickCmd(), newColorsHashCmd())
	return cmd
}

func newColorsChartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print a reference chart of colors and attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return colors.WriteChart(cmd.OutOrStdout())
		},
	}
}

func newColorsCodeCmd() *cobra.Command {
	var (
		fg, bg    string
		bold      bool
		underline bool
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the escape sequence for a style",
		Example: `  colors code --fg red --bold
  colors code --fg 208 --bg '#202020' --raw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			style := colors.Style{Bold: bold, Underline: underline}
			var err error
			if style.FG, err = colors.ParseColor(fg); err != nil {
				return err
			}
			if style.BG, err = colors.ParseColor(bg); err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), style.Sequence())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Escaped())
			return nil
		},
	}

	cmd.Flags().StringVar(&fg, "fg", "", "Foreground color")
	cmd.Flags().StringVar(&bg, "bg", "", "Background color")
	cmd.Flags().BoolVar(&bold, "bold", false, "Bold text")
	cmd.Flags().BoolVar(&underline, "underline", false, "Underlined text")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the sequence itself instead of its \\e form")

	return cmd
}

func newColorsPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a style interactively",
		Long: `Move over the 256-color palette and build a style with single keys. Enter
prints the escape sequence of the style; q or esc leaves without printing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := tea.NewProgram(colors.NewPicker(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
			)
			final, err := p.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			picker, ok := final.(colors.Picker)
			if !ok {
				return nil
			}
			if style, chosen := picker.Result(); chosen {
				fmt.Fprintln(cmd.OutOrStdout(), style.Escaped())
			}
			return nil
		},
	}
}

func newColorsHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash TEXT...",
		Short: "Derive a stable palette color from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			c := colors.Hash(text)
			style := colors.Style{FG: c}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c, style.Escaped(), text)
			return nil
		},
	}
}
