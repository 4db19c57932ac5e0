package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/bytesized/utilities/version"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

// Execute runs root with fang and exits with the matching status on error.
func Execute(root *cobra.Command) {
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version.Short()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(ExitCode(err))
	}
}
