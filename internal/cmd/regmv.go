package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/regmv"
)

var (
	arrowStyle    = lipgloss.NewStyle().Faint(true)
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// NewRegmvCmd creates the regmv subcommand, which renames files with a
// regular expression and a replacement template.
func NewRegmvCmd() *cobra.Command {
	return newRenameCmd(regmv.Move)
}

// NewRegcpCmd creates the regcp subcommand: regmv that copies instead.
func NewRegcpCmd() *cobra.Command {
	return newRenameCmd(regmv.Copy)
}

func newRenameCmd(mode regmv.Mode) *cobra.Command {
	var (
		opts   regmv.Options
		specs  []string
		dryRun bool
	)

	name, verb := "regmv", "Rename"
	if mode == regmv.Copy {
		name, verb = "regcp", "Copy"
	}

	cmd := &cobra.Command{
		Use:   name + " PATTERN TEMPLATE [PATH...]",
		Short: verb + " files by regular expression",
		Long: verb + ` every file whose name matches PATTERN to the name produced by
TEMPLATE. PATH defaults to the current directory; directories contribute
their entries (their whole subtree with -r).

TEMPLATE refers to capture groups as $1, ${1}, $name or ${name}; $$ is a
literal dollar sign. Transforms rewrite groups before the template is
rendered and run in the order given:

  arith:GROUP:EXPR            evaluate EXPR with x bound to the group
  default:[GROUP:]VALUE       fill empty or unmatched groups
  index:GROUP[:START[:WIDTH]] replace the group by its rank in the batch
  case:GROUP:upper|lower|title

The whole batch is checked before anything is touched and every conflict
is reported.`,
		Example: `  ` + name + ` 'IMG_(\d+)\.jpg' 'photo-$1.jpg'
  ` + name + ` -t 'arith:1:x+1' '(\d+)\.txt' '$1.txt'
  ` + name + ` -r --full-path -p '(\w+)/(\d+)\.log' '$2/$1.log' logs`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transforms, err := regmv.ParseTransforms(specs)
			if err != nil {
				return err
			}
			opts.Pattern, opts.Template = args[0], args[1]
			opts.Transforms = transforms
			opts.Mode = mode

			paths := args[2:]
			if len(paths) == 0 {
				paths = []string{"."}
			}
			plan, err := regmv.Build(paths, opts)
			if err != nil {
				return err
			}
			if plan.Len() == 0 {
				log.Info("no files matched", "pattern", opts.Pattern)
				return nil
			}

			if conflicts := plan.Check(); len(conflicts) > 0 {
				printConflicts(cmd.ErrOrStderr(), conflicts)
				return &regmv.ConflictError{Conflicts: conflicts}
			}
			printPlan(cmd.OutOrStdout(), plan)
			if dryRun {
				return nil
			}
			return plan.Execute(cmd.Context(), func(s regmv.Step) {
				log.Debug(mode.String(), "from", s.From, "to", s.To, "temp", s.Temp)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&specs, "transform", "t", nil, "Transform to apply before rendering (repeatable)")
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Match case-insensitively")
	cmd.Flags().BoolVar(&opts.Partial, "partial", false, "Replace only the leftmost match instead of the whole name")
	cmd.Flags().BoolVar(&opts.FullPath, "full-path", false, "Match against the path relative to each PATH")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&opts.Dirs, "dirs", false, "Also match directories")
	cmd.Flags().BoolVar(&opts.Hidden, "hidden", false, "Include names starting with a dot")
	cmd.Flags().BoolVarP(&opts.MakeDirs, "mkdir", "p", false, "Create missing destination directories")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the plan without touching any file")

	return cmd
}

func printPlan(w io.Writer, plan *regmv.Plan) {
	arrow := arrowStyle.Render("->")
	plan.Iterate(func(r regmv.Rename) bool {
		fmt.Fprintf(w, "%s %s %s\n", r.Src, arrow, r.Dst)
		return true
	})
}

func printConflicts(w io.Writer, conflicts []regmv.Conflict) {
	label := conflictStyle.Render("conflict:")
	for _, c := range conflicts {
		fmt.Fprintln(w, label, c.Error())
	}
	noun := "conflicts"
	if len(conflicts) == 1 {
		noun = "conflict"
	}
	fmt.Fprintf(w, "%d %s, nothing was changed\n", len(conflicts), noun)
}
