package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/hexdump"
	"github.com/bytesized/utilities/internal/config"
	"github.com/bytesized/utilities/internal/term"
)

// NewHexdumpCmd creates the hexdump subcommand (bhex).
func NewHexdumpCmd() *cobra.Command {
	var (
		width  int
		skip   int64
		length int64
	)

	cmd := &cobra.Command{
		Use:   "hexdump [FILE]",
		Short: "Dump bytes as offset, hex and characters",
		Long: `Print FILE (or stdin when FILE is missing or "-") as lines of offset, hex
bytes and printable characters. Lines hold as many groups of 8 bytes as fit
the terminal width.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			if !cmd.Flags().Changed("width") {
				width = config.FromContext(cmd.Context()).Hexdump.Width
			}
			if width <= 0 {
				width = term.Width(os.Stdout)
			}
			return hexdump.Dump(cmd.OutOrStdout(), in, hexdump.Options{
				PerLine: hexdump.BytesPerLine(width),
				Skip:    skip,
				Length:  length,
			})
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Line width in columns (default: terminal width)")
	cmd.Flags().Int64VarP(&skip, "skip", "s", 0, "Skip N bytes of input")
	cmd.Flags().Int64VarP(&length, "length", "n", -1, "Dump at most N bytes")

	return cmd
}
