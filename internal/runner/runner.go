// Package runner executes console commands in a shell under a fixed timeout.
// It never touches the ledger.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	applog "budget/internal/log"
)

const DefaultTimeout = 30 * time.Second

// ExternalToolFailure reports a command that timed out, could not start or
// exited non-zero.
type ExternalToolFailure struct {
	Command  string
	ExitCode int
	TimedOut bool
	Timeout  time.Duration
	Err      error
}

func (e *ExternalToolFailure) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("command timed out (%s limit)", e.Timeout)
	case e.ExitCode != 0:
		return fmt.Sprintf("exit code: %d", e.ExitCode)
	default:
		return fmt.Sprintf("command failed: %v", e.Err)
	}
}

func (e *ExternalToolFailure) Unwrap() error {
	return e.Err
}

// Result holds the captured output of a command.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

type Runner struct {
	shell   string
	timeout time.Duration
	logger  *applog.Logger
}

func New(timeout time.Duration, logger *applog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Runner{shell: "sh", timeout: timeout, logger: logger.WithComponent(applog.ComponentRunner)}
}

// Timeout returns the per-command limit.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Run executes command with "sh -c". Output captured before a failure is
// returned alongside the *ExternalToolFailure.
func (r *Runner) Run(ctx context.Context, command string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String(), Duration: time.Since(start)}

	if err == nil {
		r.logger.InfoContext(ctx, "Command completed",
			applog.FieldCommand, command,
			applog.FieldDuration, res.Duration.Milliseconds())
		return res, nil
	}

	failure := &ExternalToolFailure{Command: command, Timeout: r.timeout, Err: err}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		failure.TimedOut = true
	case errors.As(err, &exitErr):
		failure.ExitCode = exitErr.ExitCode()
	}
	errType := applog.ErrorTypeExternalTool
	if failure.TimedOut {
		errType = applog.ErrorTypeTimeout
	}
	r.logger.WarnContext(ctx, "Command failed",
		applog.FieldOperation, applog.OpExec,
		applog.FieldCommand, command,
		applog.FieldExitCode, failure.ExitCode,
		"timed_out", failure.TimedOut,
		"error_type", errType,
		applog.FieldError, err)
	return res, failure
}
