package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/internal/config"
	"github.com/bytesized/utilities/notify"
)

var newNotifier = notify.New

// NewNotifyCmd creates the notify subcommand (bnotify).
func NewNotifyCmd() *cobra.Command {
	var (
		title   string
		urgency string
		run     bool
	)

	cmd := &cobra.Command{
		Use:   "notify MESSAGE...",
		Short: "Show a desktop notification",
		Long: `Show MESSAGE as a desktop notification with notify-send, osascript or
PowerShell depending on the platform.

With --run the arguments are a command to run; a notification reports how
it went once it finishes and notify exits with the command's status.`,
		Example: `  notify "coffee is ready"
  notify --run -- make test`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") {
				title = config.FromContext(cmd.Context()).Notify.Title
			}
			u, err := notify.ParseUrgency(urgency)
			if err != nil {
				return err
			}
			notifier := newNotifier()

			if !run {
				return notifier.Send(cmd.Context(), notify.Notification{
					Title:   title,
					Message: strings.Join(args, " "),
					Urgency: u,
				})
			}

			res, runErr := notify.Run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			n := res.Notification(title)
			if cmd.Flags().Changed("urgency") {
				n.Urgency = u
			}
			if runErr != nil {
				n.Message = fmt.Sprintf("✘ %s could not start: %v", strings.Join(args, " "), runErr)
			}
			if err := notifier.Send(cmd.Context(), n); err != nil {
				log.Warn("notification failed", "err", err)
			}
			if runErr != nil {
				return runErr
			}
			if res.ExitCode != 0 {
				return &ExitError{
					Code: res.ExitCode,
					Err:  fmt.Errorf("%s exited with status %d", strings.Join(args, " "), res.ExitCode),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Notification title (default from notify.title)")
	cmd.Flags().StringVarP(&urgency, "urgency", "u", "normal", "Urgency: low, normal or critical")
	cmd.Flags().BoolVar(&run, "run", false, "Run the arguments as a command and notify when it finishes")

	return cmd
}
