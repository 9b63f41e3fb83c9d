// Package django wraps the Django management commands the scaffolder
// invokes: django-admin for project creation, manage.py for app creation
// and migrations, and pip for dependency installation.
//
// Each wrapper is a single attempt through the runner: none of these
// commands is safe to retry blindly (startproject fails once the target
// directory exists). Failures surface as *runner.CommandError wrapped with
// the operation name; the orchestrator decides what is fatal.
package django

import (
	"context"
	"fmt"

	"djangokit/internal/runner"
)

// AdminBinary is the Django project generator executable.
const AdminBinary = "django-admin"

// Commands invokes Django management commands inside one project
// directory.
type Commands struct {
	runner runner.Runner
	dir    string
	python string
}

// NewCommands creates a Commands bound to the given working directory.
// The Python interpreter is resolved once: python3 where available,
// python otherwise (some virtualenvs only expose the unversioned name).
func NewCommands(r runner.Runner, dir string) *Commands {
	python := "python"
	if runner.LookPath("python3") {
		python = "python3"
	}
	return &Commands{runner: r, dir: dir, python: python}
}

// StartProject runs `django-admin startproject <name> .`, generating the
// project package into the working directory itself rather than a nested
// directory.
func (c *Commands) StartProject(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, c.dir, AdminBinary, "startproject", name, "."); err != nil {
		return fmt.Errorf("create project %q: %w", name, err)
	}
	return nil
}

// StartApp runs `manage.py startapp <name>` to generate an application
// package. The project must already exist, since manage.py is written by
// StartProject.
func (c *Commands) StartApp(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, c.dir, c.python, "manage.py", "startapp", name); err != nil {
		return fmt.Errorf("create app %q: %w", name, err)
	}
	return nil
}

// InstallDependencies runs pip against the generated requirements.txt.
func (c *Commands) InstallDependencies(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.dir, c.python, "-m", "pip", "install", "-r", "requirements.txt"); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}
	return nil
}

// RunMigrations generates and applies the initial migrations. The custom
// User model must be migrated before the first `migrate` ever runs, which
// is why this stage comes after the settings patch.
func (c *Commands) RunMigrations(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.dir, c.python, "manage.py", "makemigrations"); err != nil {
		return fmt.Errorf("make migrations: %w", err)
	}
	if _, err := c.runner.Run(ctx, c.dir, c.python, "manage.py", "migrate"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
