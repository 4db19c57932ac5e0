package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/digest"
	"github.com/bytesized/utilities/internal/config"
	"github.com/bytesized/utilities/internal/term"
	"github.com/bytesized/utilities/util"
)

// NewHashCmd creates the hash subcommand (bhash).
func NewHashCmd() *cobra.Command {
	var (
		algorithm  string
		expect     string
		expectFile string
		tree       string
		write      bool
		progress   bool
	)

	cmd := &cobra.Command{
		Use:   "hash [FILE...]",
		Short: "Hash files and verify digests",
		Long: `Print the digest of each FILE in coreutils "HEX  PATH" format, or verify
files against known digests.

With --expect or --expect-file a single FILE is compared against the given
digest. The expected file may hold a bare hex digest, coreutils lines or BSD
"ALGO (NAME) = HEX" lines. Without -a the algorithm is taken from a BSD line
or guessed from the digest length.

With -r every file below DIR is checked against its FILE.<algo> sidecar.

Algorithms: ` + strings.Join(util.Algorithms(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			out := cmd.OutOrStdout()

			checker := &digest.Checker{}
			if progress && term.IsTerminal(os.Stderr) {
				attachProgress(checker, term.Width(os.Stderr))
			}

			switch {
			case tree != "":
				if len(args) > 0 || expect != "" || expectFile != "" {
					return errors.New("-r cannot be combined with files or expected digests")
				}
				algo := algorithm
				if algo == "" {
					algo = cfg.Hash.Algorithm
				}
				canonical, err := util.CanonicalAlgorithm(algo)
				if err != nil {
					return err
				}
				checker.Algorithm = canonical
				sum, err := checker.VerifyTree(cmd.Context(), tree, write, func(r digest.Result) {
					printResult(cmd, r)
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sum)
				return sum.Err()

			case expect != "" || expectFile != "":
				if len(args) != 1 {
					return errors.New("exactly one FILE is needed to compare against an expected digest")
				}
				if expect != "" && expectFile != "" {
					return errors.New("--expect and --expect-file are mutually exclusive")
				}
				exp, err := loadExpected(expect, expectFile, args[0])
				if err != nil {
					return err
				}
				if checker.Algorithm, err = digest.ResolveAlgorithm(algorithm, exp, cfg.Hash.Algorithm); err != nil {
					return err
				}
				r := checker.Verify(args[0], exp)
				printResult(cmd, r)
				if r.Status == digest.StatusMismatch {
					return fmt.Errorf("%w: %s", digest.ErrMismatch, args[0])
				}
				return r.Err

			default:
				if write {
					return errors.New("--write needs -r DIR")
				}
				if len(args) == 0 {
					return errors.New("no FILE given")
				}
				algo := algorithm
				if algo == "" {
					algo = cfg.Hash.Algorithm
				}
				canonical, err := util.CanonicalAlgorithm(algo)
				if err != nil {
					return err
				}
				checker.Algorithm = canonical
				failed := 0
				for _, path := range args {
					sum, err := checker.Sum(path)
					if err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
						failed++
						continue
					}
					fmt.Fprintln(out, digest.Line(sum, path))
				}
				if failed > 0 {
					return fmt.Errorf("%w: %d of %d", digest.ErrUnreadable, failed, len(args))
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Hash algorithm (default from hash.algorithm, sha256)")
	cmd.Flags().StringVar(&expect, "expect", "", "Expected digest of FILE")
	cmd.Flags().StringVar(&expectFile, "expect-file", "", "File holding the expected digest of FILE")
	cmd.Flags().StringVarP(&tree, "recursive", "r", "", "Verify every file below `DIR` against its sidecar digest")
	cmd.Flags().BoolVar(&write, "write", false, "With -r, create missing sidecar digests")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr while hashing")

	return cmd
}

func loadExpected(expect, expectFile, target string) (digest.Expected, error) {
	if expect != "" {
		return digest.ParseExpected(expect)
	}
	f, err := os.Open(expectFile)
	if err != nil {
		return digest.Expected{}, err
	}
	defer f.Close()
	return digest.ReadExpected(f, target)
}

func printResult(cmd *cobra.Command, r digest.Result) {
	if r.Status == digest.StatusError {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%v)\n", r.Path, r.Status, r.Err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Path, r.Status)
}

func attachProgress(c *digest.Checker, width int) {
	var bar *term.Bar
	c.Progress = func(path string) util.ProgressFunc {
		bar = term.NewBar(os.Stderr, filepath.Base(path), min(40, width/2))
		return bar.Update
	}
	c.Done = func(string) {
		if bar != nil {
			bar.Clear()
		}
	}
}
