package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/internal/config"
	"github.com/bytesized/utilities/internal/term"
	"github.com/bytesized/utilities/markdown"
)

// NewMarkdownCmd creates the markdown subcommand (bmarkdown).
func NewMarkdownCmd() *cobra.Command {
	var (
		output     string
		standalone bool
		preview    bool
		watch      bool
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "markdown FILE",
		Short: "Render markdown to HTML with the GitHub API",
		Long: `Render FILE to HTML through the GitHub markdown API and write it next to
FILE with an .html extension, or to -o OUT.

A token from markdown.token or GITHUB_TOKEN is sent when set. --preview
renders in the terminal instead and makes no network call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cfg := config.FromContext(cmd.Context())
			if mode == "" {
				mode = cfg.Markdown.Mode
			}
			if output == "" {
				output = markdown.OutputPath(input)
			}
			if !preview {
				if err := markdown.CheckOutput(input, output); err != nil {
					return err
				}
			}

			render := func(ctx context.Context) error {
				text, err := os.ReadFile(input)
				if err != nil {
					return err
				}
				if preview {
					out, err := markdown.Preview(string(text), term.Width(os.Stdout))
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), out)
					return nil
				}
				client := &markdown.Client{
					APIURL:  cfg.Markdown.APIURL,
					Token:   cfg.Markdown.Token,
					Mode:    mode,
					Context: cfg.Markdown.Context,
				}
				html, err := client.Render(ctx, string(text))
				if err != nil {
					return err
				}
				if standalone {
					title := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
					html = markdown.Standalone(title, html)
				}
				if err := os.WriteFile(output, html, 0o644); err != nil {
					return err
				}
				log.Info("rendered", "input", input, "output", output)
				return nil
			}

			if err := render(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			w, err := markdown.NewWatcher(input, markdown.DefaultDebounce)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, press ctrl+c to stop\n", input)
			err = w.Run(ctx, func() error { return render(ctx) })
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: FILE with an .html extension)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "Wrap the output in a complete HTML document")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render in the terminal instead of calling the API")
	cmd.Flags().BoolVar(&watch, "watch", false, "Render again every time FILE is saved")
	cmd.Flags().StringVar(&mode, "mode", "", "API mode: gfm or markdown (default from markdown.mode)")

	return cmd
}
