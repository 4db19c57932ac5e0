// Package logging configures the structured logger shared by every
// bytesized command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w at the named level ("debug", "info",
// "warn", "error", "fatal").
func New(w io.Writer, level string, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: lvl <= log.DebugLevel,
	})
	return logger, nil
}

// Setup builds a logger with New and installs it as the package-level
// default so library code can call log.Debug and friends directly.
func Setup(w io.Writer, level string, prefix string) (*log.Logger, error) {
	logger, err := New(w, level, prefix)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger, nil
}
