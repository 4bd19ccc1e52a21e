package proposals

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommandTimeout is the maximum time to wait for one external validator
const DefaultCommandTimeout = 5 * time.Minute

// CommandResult holds the captured output of an external command
type CommandResult struct {
	Stdout string
	Stderr string
}

// Runner executes external validator commands
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

// CommandError represents a failed or timed-out external command
type CommandError struct {
	Command  string
	ExitCode int
	Result   *CommandResult
	Cause    error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command failed: %s (exit code %d): %v", e.Command, e.ExitCode, e.Cause)
	}
	return fmt.Sprintf("command failed: %s (exit code %d)", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// ExecRunner runs commands as subprocesses with a per-command timeout
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner. A non-positive timeout uses DefaultCommandTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args, capturing stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	display := CommandLine(name, args...)

	if _, err := exec.LookPath(name); err != nil {
		return nil, &CommandError{
			Command:  display,
			ExitCode: -1,
			Result:   &CommandResult{Stderr: fmt.Sprintf("%s not found in PATH", name)},
			Cause:    err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := &CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return result, nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		runErr = fmt.Errorf("timed out after %s: %w", r.Timeout, runErr)
	}

	return result, &CommandError{
		Command:  display,
		ExitCode: exitCode,
		Result:   result,
		Cause:    runErr,
	}
}

// CommandLine renders a command for logs, quoting arguments that contain spaces.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
