package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/internal/config"
	"github.com/bytesized/utilities/internal/logging"
	"github.com/bytesized/utilities/internal/term"
	"github.com/bytesized/utilities/version"
)

const (
	groupFiles    = "files"
	groupTerminal = "terminal"
	groupSetup    = "setup"
)

// NewRootCmd creates and returns the root cobra command for the bytesized
// CLI. Every utility is registered as a subcommand.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytesized",
		Short: "bytesized - a toolbox of small command-line utilities",
		Long: `bytesized bundles small command-line utilities behind one binary.

Each utility is also built as its own binary (regmv, bhash, bhex, ...)
that behaves exactly like the matching subcommand here.

Configuration is read from ~/.bytesized_utilities/config/config.toml and
BYTESIZED_* environment variables.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(rootCmd)

	rootCmd.AddGroup(&cobra.Group{ID: groupFiles, Title: "File Utilities"})
	rootCmd.AddGroup(&cobra.Group{ID: groupTerminal, Title: "Terminal Utilities"})
	rootCmd.AddGroup(&cobra.Group{ID: groupSetup, Title: "Setup"})

	for _, c := range []*cobra.Command{
		NewRegmvCmd(),
		NewRegcpCmd(),
		NewHashCmd(),
		NewHexdumpCmd(),
		NewMarkdownCmd(),
		NewWifiQRCmd(),
	} {
		c.GroupID = groupFiles
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		NewColsCmd(),
		NewColorsCmd(),
		NewNotifyCmd(),
		NewClearClipCmd(),
		NewLabelCmd(),
	} {
		c.GroupID = groupTerminal
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		NewInstallCmd(),
		NewShellCmd(),
		NewVersionCmd(),
	} {
		c.GroupID = groupSetup
		rootCmd.AddCommand(c)
	}

	return rootCmd
}

// Standalone turns a subcommand into the root of its own binary called
// name.
func Standalone(name string, cmd *cobra.Command) *cobra.Command {
	_, args, _ := strings.Cut(cmd.Use, " ")
	cmd.Use = strings.TrimSpace(name + " " + args)
	cmd.GroupID = ""
	cmd.Version = version.Short()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	addGlobalFlags(cmd)
	return cmd
}

func addGlobalFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.PersistentFlags().String("config", "", "Path to the config file (default ~/.bytesized_utilities/config/config.toml)")
	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("color", defaults.Color, "Color output: auto, always or never")
	cmd.PersistentPreRunE = setup
}

// setup loads the configuration, installs the logger and resolves the
// color mode before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	if _, err := logging.Setup(os.Stderr, cfg.LogLevel, cmd.Root().Name()); err != nil {
		return err
	}
	term.Configure(cfg.Color, os.Stdout)
	cmd.SetContext(config.WithContext(cmd.Context(), cfg))
	return nil
}
