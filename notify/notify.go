// Package notify shows desktop notifications through the notifier each
// platform ships with: notify-send, osascript or PowerShell.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bytesized/utilities/util"
)

var (
	ErrUnsupportedOS  = errors.New("notifications are not supported on this platform")
	ErrInvalidUrgency = errors.New("invalid urgency")
	ErrEmptyMessage   = errors.New("notification message is empty")
)

// Urgency is the notification priority. Only notify-send honours it.
type Urgency string

const (
	Low      Urgency = "low"
	Normal   Urgency = "normal"
	Critical Urgency = "critical"
)

func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(s)); u {
	case Low, Normal, Critical:
		return u, nil
	case "":
		return Normal, nil
	}
	return "", fmt.Errorf("%w: %q (want low, normal or critical)", ErrInvalidUrgency, s)
}

// Notification is what gets shown.
type Notification struct {
	Title   string
	Message string
	Urgency Urgency
}

// Command is the program and arguments that display a notification.
type Command struct {
	Name string
	Args []string
}

// CommandFor builds the notifier invocation for goos.
func CommandFor(goos string, n Notification) (Command, error) {
	if n.Message == "" {
		return Command{}, ErrEmptyMessage
	}
	urgency := n.Urgency
	if urgency == "" {
		urgency = Normal
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return Command{Name: "notify-send", Args: []string{"-u", string(urgency), "--", n.Title, n.Message}}, nil
	case "darwin":
		script := "display notification " + AppleScriptQuote(n.Message)
		if n.Title != "" {
			script += " with title " + AppleScriptQuote(n.Title)
		}
		return Command{Name: "osascript", Args: []string{"-e", script}}, nil
	case "windows":
		return Command{Name: "powershell", Args: []string{"-NoProfile", "-NonInteractive", "-Command", toastScript(n)}}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}

// AppleScriptQuote returns s as an AppleScript string literal.
func AppleScriptQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// PowerShellQuote returns s as a single-quoted PowerShell string literal.
func PowerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func toastScript(n Notification) string {
	title := n.Title
	if title == "" {
		title = " "
	}
	lines := []string{
		"[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null",
		"$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)",
		"$text = $template.GetElementsByTagName('text')",
		"$text.Item(0).AppendChild($template.CreateTextNode(" + PowerShellQuote(title) + ")) > $null",
		"$text.Item(1).AppendChild($template.CreateTextNode(" + PowerShellQuote(n.Message) + ")) > $null",
		"$toast = [Windows.UI.Notifications.ToastNotification]::new($template)",
		"[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(" + PowerShellQuote(title) + ").Show($toast)",
	}
	return strings.Join(lines, "; ")
}

// Notifier sends notifications on the current platform.
type Notifier struct {
	GOOS   string
	Lookup func(name string) (string, error)
	Exec   func(ctx context.Context, path string, args ...string) error
}

// New returns a Notifier for the running platform.
func New() *Notifier {
	return &Notifier{
		GOOS:   runtime.GOOS,
		Lookup: func(name string) (string, error) { return util.Which(name) },
		Exec:   execCommand,
	}
}

// Send shows n.
func (nt *Notifier) Send(ctx context.Context, n Notification) error {
	cmd, err := CommandFor(nt.GOOS, n)
	if err != nil {
		return err
	}
	path, err := nt.Lookup(cmd.Name)
	if err != nil {
		return fmt.Errorf("locate notifier: %w", err)
	}
	log.Debug("sending notification", "notifier", path, "title", n.Title)
	return nt.Exec(ctx, path, cmd.Args...)
}

func execCommand(ctx context.Context, path string, args ...string) error {
	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, path, args...)
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", path, err, msg)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
