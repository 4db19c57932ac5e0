// Package term resolves the color mode and terminal geometry for the
// bytesized commands.
//
// [Configure] is called once during startup. It applies the resolved color
// profile to lipgloss so every styled string honours --color and NO_COLOR.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// DefaultWidth is assumed when the output is not a terminal.
const DefaultWidth = 80

// Configure resolves mode ("auto", "always", "never") against out and sets
// the lipgloss color profile accordingly. It reports whether colors are on.
func Configure(mode string, out *os.File) bool {
	enabled := Resolve(mode, out)
	if enabled {
		profile := termenv.NewOutput(out).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		lipgloss.SetColorProfile(profile)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return enabled
}

// Resolve determines whether colors should be enabled based on the
// configured mode, TTY detection, and the NO_COLOR env var
// (https://no-color.org).
func Resolve(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return IsTerminal(out) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// Width returns the column count of f, or DefaultWidth when it cannot be
// measured.
func Width(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	w, _, err := xterm.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// ReadPassword reads a line from f without echoing it.
func ReadPassword(f *os.File) (string, error) {
	b, err := xterm.ReadPassword(int(f.Fd()))
	return string(b), err
}
