package model

import (
	"fmt"
)

// ScaffoldRun is the transient context for one `create` invocation.
// It is built at CLI entry from flags and prompt answers, threaded through
// every orchestration stage, and discarded at process exit. Replacing
// process-wide state with this explicit value keeps each stage testable
// in isolation.
type ScaffoldRun struct {
	// ProjectApp is the name of the Django project package (the directory
	// that holds settings.py, urls.py, wsgi.py). Defaults to "config".
	ProjectApp string

	// CustomApp is the optional user application to create alongside the
	// project. Empty means no custom app.
	CustomApp string

	// DockerIntegration enables generation of the Docker Compose stack
	// (web, worker, scheduler, monitoring, proxy, datastore, cache, mail)
	// and the matching settings patches.
	DockerIntegration bool

	// DockerProject is the Compose project name used for service and
	// network naming. Only meaningful when DockerIntegration is set.
	DockerProject string

	// WorkingDir is the directory the project is scaffolded into.
	// All external commands run with this as their working directory.
	WorkingDir string
}

// HasCustomApp reports whether the run creates a user application in
// addition to the project package and the accounts app.
func (r *ScaffoldRun) HasCustomApp() bool {
	return r.CustomApp != ""
}

// SettingsPath returns the path of the generated settings file, relative
// to the working directory. django-admin places it inside the project
// package directory.
func (r *ScaffoldRun) SettingsPath() string {
	return r.ProjectApp + "/settings.py"
}

// ExitCode defines the CLI exit codes. These are a stable contract for
// scripts wrapping djangokit.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully. A run that
	// finished with advisory failures (dependency install, migrations)
	// still exits with this code; the generated project is usable.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidName indicates a project or app name failed identifier
	// validation. Nothing has been written to disk when this is returned.
	ExitInvalidName ExitCode = 2

	// ExitSettingsError indicates the generated settings file could not
	// be patched (list region missing or malformed).
	ExitSettingsError ExitCode = 3

	// ExitCommandError indicates an external command (django-admin,
	// manage.py, pip) failed in a fatal stage.
	ExitCommandError ExitCode = 4

	// ExitReadWriteError indicates a filesystem read or write failed.
	ExitReadWriteError ExitCode = 5
)

// CLIError is an error that carries an exit code. The cli package
// translates it into the process exit status; everything below the CLI
// returns it with enough context that no caller has to re-derive what
// went wrong.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
