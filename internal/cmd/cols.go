package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/columns"
)

// NewColsCmd creates the bcols subcommand.
func NewColsCmd() *cobra.Command {
	var (
		delimiter string
		separator string
		right     string
	)

	cmd := &cobra.Command{
		Use:   "bcols [FILE...]",
		Short: "Align delimited text into columns",
		Long: `Read rows from the FILEs (or stdin) and print them with every column padded
to its widest cell. Cells are split on runs of whitespace unless -d gives a
literal delimiter.`,
		Example: `  ps aux | bcols
  bcols -d , -r 2,3 prices.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := columns.Options{Delimiter: delimiter, Separator: separator}
			if right != "" {
				cols, err := columns.ParseColumns(right)
				if err != nil {
					return err
				}
				opts.Right = cols
			}

			if len(args) == 0 {
				return columns.Format(cmd.OutOrStdout(), cmd.InOrStdin(), opts)
			}
			table := &columns.Table{}
			for _, path := range args {
				if err := readTable(table, path, delimiter); err != nil {
					return err
				}
			}
			return table.Write(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "Literal cell delimiter (default: runs of whitespace)")
	cmd.Flags().StringVarP(&separator, "separator", "s", columns.DefaultSeparator, "Text placed between columns")
	cmd.Flags().StringVarP(&right, "right", "r", "", "Right-align these 1-based columns, e.g. 2,3")

	return cmd
}

func readTable(t *columns.Table, path, delim string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.ReadFrom(f, delim)
}
