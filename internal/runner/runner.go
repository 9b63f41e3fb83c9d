// Package runner executes the external commands the scaffolder depends on
// (django-admin, manage.py, pip).
//
// The Runner interface exists so the orchestrator can be tested against a
// stub without spawning processes. The production implementation is a thin
// synchronous wrapper over os/exec: one attempt, combined output capture,
// and context-based timeouts. Scaffolding commands are not safe to retry
// blindly ("startproject" fails the second time because the directory now
// exists), so each command gets a single attempt with a clear error.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result describes one finished command invocation. It is created per
// invocation and consumed immediately by the orchestrator to decide
// continue or abort.
type Result struct {
	// Command is the full command line, for error reporting.
	Command string

	// ExitCode is the process exit status. Zero on success.
	ExitCode int

	// Output is the combined stdout and stderr of the process.
	Output string
}

// CommandError reports a command that could not be run or exited non-zero.
type CommandError struct {
	// Command is the full command line that failed.
	Command string

	// ExitCode is the process exit status, or -1 if the process never
	// ran (binary missing) or was cut off by the timeout.
	ExitCode int

	// Output is the combined output captured before the failure.
	Output string

	// TimedOut marks failures caused by the context deadline rather
	// than the command itself.
	TimedOut bool

	// Err is the underlying execution error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("command %q timed out", e.Command)
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q could not be run: %v", e.Command, e.Err)
}

// Unwrap returns the underlying execution error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner runs external commands. Implementations must be safe to stub in
// tests.
type Runner interface {
	// Run executes name with args in dir, blocking until the command
	// finishes or ctx expires. A non-zero exit, a missing binary, and a
	// timeout all return a *CommandError; the Result is returned in every
	// case so callers can log partial output.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// New creates an ExecRunner.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures its combined output.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	command := name
	if len(args) > 0 {
		command = name + " " + strings.Join(args, " ")
	}

	err := cmd.Run()
	result := Result{Command: command, Output: output.String()}

	if err == nil {
		return result, nil
	}

	result.ExitCode = -1
	cmdErr := &CommandError{
		Command:  command,
		ExitCode: -1,
		Output:   result.Output,
		Err:      err,
	}

	// A deadline expiry kills the process, which surfaces as a generic
	// exec error; the context tells us it was actually a timeout.
	if ctx.Err() != nil {
		cmdErr.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		cmdErr.Err = ctx.Err()
		return result, cmdErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		cmdErr.ExitCode = result.ExitCode
	}

	return result, cmdErr
}

// LookPath reports whether an executable with the given name is available
// on PATH. Used by the doctor command and by preflight checks.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
