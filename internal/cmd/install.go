package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/installer"
)

// boolFlag is a boolean flag that takes an explicit value in any of the
// forms installer.ParseBool accepts.
type boolFlag struct {
	value *bool
}

func (b boolFlag) String() string {
	if b.value == nil {
		return "false"
	}
	return strconv.FormatBool(*b.value)
}

func (b boolFlag) Set(s string) error {
	v, err := installer.ParseBool(s)
	if err != nil {
		return err
	}
	*b.value = v
	return nil
}

func (boolFlag) Type() string { return "BOOL" }

// newInstaller is replaced in tests.
var newInstaller = installer.New

// NewInstallCmd creates the install subcommand.
func NewInstallCmd() *cobra.Command {
	var (
		uninstall   bool
		leaveConfig bool
		quiet       bool
		mozilla     bool
		build       bool
		configure   bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install or remove the shell profile and external tools",
		Long: `Build the external utilities and install the shell profile, or remove
everything again with --uninstall.

--mozilla, --build and --configure default to the values given the last time
install ran; they only need to be passed once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mozilla") {
				in.State.Mozilla = mozilla
			}
			if cmd.Flags().Changed("build") {
				in.State.Build = build
			}
			if cmd.Flags().Changed("configure") {
				in.State.Configure = configure
			}
			in.Uninstall = uninstall
			in.LeaveConfig = leaveConfig
			in.Quiet = quiet
			return in.Execute(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&uninstall, "uninstall", "u", false, "Uninstall instead of installing")
	cmd.Flags().BoolVarP(&leaveConfig, "leave-config", "L", false, "With --uninstall, keep configuration and data")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress")
	cmd.Flags().Var(boolFlag{&mozilla}, "mozilla", "Add Mozilla-specific configuration (default: previous run, else false)")
	cmd.Flags().Var(boolFlag{&build}, "build", "Build utilities that need building (default: previous run, else true)")
	cmd.Flags().Var(boolFlag{&configure}, "configure", "Install configuration files (default: previous run, else true)")

	return cmd
}
