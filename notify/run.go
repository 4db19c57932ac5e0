package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// RunResult describes a finished command.
type RunResult struct {
	Args     []string
	ExitCode int
	Elapsed  time.Duration
	Err      error // start failure or non-zero exit
}

// Run executes args with the given standard streams and reports how it
// went. The returned error is only set when the command could not be
// started; a non-zero exit is reported through RunResult.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (RunResult, error) {
	res := RunResult{Args: args}
	if len(args) == 0 {
		return res, errors.New("no command given")
	}
	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Stdin, c.Stdout, c.Stderr = stdin, stdout, stderr

	start := time.Now()
	err := c.Run()
	res.Elapsed = time.Since(start)
	res.Err = err

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			res.ExitCode = 1
		}
	default:
		res.ExitCode = 127
		return res, err
	}
	return res, nil
}

// Notification summarises the result for display.
func (r RunResult) Notification(title string) Notification {
	cmd := strings.Join(r.Args, " ")
	elapsed := r.Elapsed.Round(100 * time.Millisecond)
	if r.ExitCode == 0 {
		return Notification{
			Title:   title,
			Message: fmt.Sprintf("✔ %s finished in %s", cmd, elapsed),
			Urgency: Normal,
		}
	}
	return Notification{
		Title:   title,
		Message: fmt.Sprintf("✘ %s failed with status %d after %s", cmd, r.ExitCode, elapsed),
		Urgency: Critical,
	}
}
