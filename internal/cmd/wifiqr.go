package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/internal/term"
	"github.com/bytesized/utilities/wifiqr"
)

// NewWifiQRCmd creates the wifiqr subcommand.
func NewWifiQRCmd() *cobra.Command {
	var (
		ssid     string
		password string
		security string
		hidden   bool
		size     int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "wifiqr",
		Short: "Make a printable QR code for joining a Wi-Fi network",
		Long: `Write a PNG with a QR code phones can scan to join a Wi-Fi network, with
the network name above the code and the password below it.

Values not given as flags are asked for. When no SSID is given the security
type and hidden flag are asked for as well. The password is read without
echo on a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sec, err := wifiqr.ParseSecurity(security)
			if err != nil {
				return err
			}
			n := wifiqr.Network{SSID: ssid, Password: password, Security: sec, Hidden: hidden}

			interactive := ssid == ""
			ask := wifiqr.Ask{
				Security: interactive && !cmd.Flags().Changed("security"),
				Hidden:   interactive && !cmd.Flags().Changed("hidden"),
			}
			p := wifiqr.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(in) {
				p.ReadPassword = func() (string, error) { return term.ReadPassword(in) }
			}
			if err := p.Fill(&n, ask); err != nil {
				return err
			}
			if err := n.Validate(); err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := wifiqr.WritePNG(f, n, size); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info("wrote QR code", "ssid", n.SSID, "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ssid, "ssid", "s", "", "Network name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Network password")
	cmd.Flags().StringVar(&security, "security", "WPA", "Security type: WPA, WEP or nopass")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "The network does not broadcast its name")
	cmd.Flags().IntVar(&size, "size", wifiqr.DefaultSize, "QR code size in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "wifi.png", "Output PNG path")

	return cmd
}
