// Package builder orchestrates the full scaffolding run.
//
// A run is a fixed sequence of stages. Each stage is either fatal or
// advisory: a fatal failure aborts the run with a typed error, an
// advisory failure is recorded and the run continues, ending in success
// with follow-up instructions for the steps the user has to finish by
// hand. Dependency installation and migrations are advisory because the
// generated project is complete and usable without them; everything that
// writes project files is fatal.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/briandowns/spinner"

	"djangokit/internal/django"
	"djangokit/internal/docker"
	"djangokit/internal/model"
	"djangokit/internal/runner"
	"djangokit/internal/scaffold"
	"djangokit/internal/settings"
)

// StageStatus is the outcome of one orchestration stage.
type StageStatus int

const (
	// StageOK means the stage completed.
	StageOK StageStatus = iota

	// StageFailed means the stage returned an error. Whether the run
	// continued depends on the stage's fatality.
	StageFailed

	// StageSkipped means the stage did not apply to this run.
	StageSkipped
)

// String returns the status label used in the run summary.
func (s StageStatus) String() string {
	switch s {
	case StageOK:
		return "ok"
	case StageFailed:
		return "failed"
	case StageSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StageResult records the outcome of one stage for the run summary.
type StageResult struct {
	Name   string
	Status StageStatus
	Err    error
}

// stage is one step of the run. Fatal stages abort on error; the rest
// are advisory. skip, when set, excludes the stage from this run. spin
// marks stages slow enough to deserve a progress spinner.
type stage struct {
	name  string
	fatal bool
	spin  bool
	skip  func() bool
	run   func(ctx context.Context) error
}

// followUps maps advisory stage names to the manual commands the user can
// run afterwards. Printed when the corresponding stage failed.
var followUps = map[string][]string{
	stageInstallDeps: {"python -m pip install -r requirements.txt"},
	stageMigrations:  {"python manage.py makemigrations", "python manage.py migrate"},
	stageGitignore:   {"curl -o .gitignore " + scaffold.GitignoreURL},
	stageCheckDocker: {"start the Docker daemon, then: docker compose up"},
}

// Stage names double as the labels in the run summary.
const (
	stageValidateNames  = "validate names"
	stageRequirements   = "write requirements.txt"
	stageInstallDeps    = "install dependencies"
	stageCreateProject  = "create Django project"
	stageCreateApp      = "create custom app"
	stageHelpers        = "create helpers module"
	stageAuthApp        = "create accounts app"
	stagePatchSettings  = "patch settings.py"
	stageGitignore      = "write .gitignore"
	stageMigrations     = "run migrations"
	stageCheckDocker    = "check Docker daemon"
	stageDockerStack    = "generate Docker stack"
	stageDockerSettings = "patch Docker settings"
)

// Builder runs the scaffolding sequence for one ScaffoldRun.
type Builder struct {
	run      *model.ScaffoldRun
	commands *django.Commands
	renderer *scaffold.Renderer
	out      io.Writer

	// gitignoreURL is swapped for a test server in tests.
	gitignoreURL string

	// dockerCheck probes the daemon; injected so tests need no Docker.
	dockerCheck func(ctx context.Context) error

	// interactive enables the progress spinner. Off for tests and
	// non-terminal output.
	interactive bool
}

// New creates a Builder for the given run. Output (stage progress, the
// summary, follow-up instructions) goes to out.
func New(run *model.ScaffoldRun, r runner.Runner, renderer *scaffold.Renderer, out io.Writer) *Builder {
	return &Builder{
		run:          run,
		commands:     django.NewCommands(r, run.WorkingDir),
		renderer:     renderer,
		out:          out,
		gitignoreURL: scaffold.GitignoreURL,
		dockerCheck:  docker.DaemonReachable,
	}
}

// SetInteractive toggles the progress spinner for slow stages.
func (b *Builder) SetInteractive(on bool) { b.interactive = on }

// Setup executes the full stage sequence. The returned results cover
// every stage in order, including skipped ones. A non-nil error means a
// fatal stage failed; it is always a *model.CLIError carrying the exit
// code for that failure class. Advisory failures do not produce an
// error; they are visible in the results and in the printed follow-ups.
func (b *Builder) Setup(ctx context.Context) ([]StageResult, error) {
	stages := b.stages()
	results := make([]StageResult, 0, len(stages))

	for _, s := range stages {
		if s.skip != nil && s.skip() {
			results = append(results, StageResult{Name: s.name, Status: StageSkipped})
			continue
		}

		err := b.runStage(ctx, s)
		if err == nil {
			results = append(results, StageResult{Name: s.name, Status: StageOK})
			continue
		}

		results = append(results, StageResult{Name: s.name, Status: StageFailed, Err: err})
		if s.fatal {
			b.printSummary(results)
			return results, classify(fmt.Errorf("%s: %w", s.name, err))
		}
		fmt.Fprintf(b.out, "warning: %s failed: %v\n", s.name, err)
	}

	b.printSummary(results)
	b.printFollowUps(results)
	return results, nil
}

// runStage executes one stage, showing a spinner for slow stages when
// running interactively.
func (b *Builder) runStage(ctx context.Context, s stage) error {
	if !s.spin || !b.interactive {
		fmt.Fprintf(b.out, "%s...\n", s.name)
		return s.run(ctx)
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(b.out))
	sp.Suffix = " " + s.name
	sp.Start()
	defer sp.Stop()
	return s.run(ctx)
}

// stages builds the ordered stage table for this run. The Docker stages
// are appended only when the integration was requested.
func (b *Builder) stages() []stage {
	run := b.run

	list := []stage{
		{
			name:  stageValidateNames,
			fatal: true,
			run: func(context.Context) error {
				return b.validateNames()
			},
		},
		{
			name:  stageRequirements,
			fatal: true,
			run: func(context.Context) error {
				return scaffold.CreateRequirements(b.renderer, run.WorkingDir, b.renderContext())
			},
		},
		{
			name: stageInstallDeps,
			spin: true,
			run:  b.commands.InstallDependencies,
		},
		{
			name:  stageCreateProject,
			fatal: true,
			spin:  true,
			run: func(ctx context.Context) error {
				return b.commands.StartProject(ctx, run.ProjectApp)
			},
		},
		{
			name:  stageCreateApp,
			fatal: true,
			skip:  func() bool { return !run.HasCustomApp() },
			run: func(ctx context.Context) error {
				return b.commands.StartApp(ctx, run.CustomApp)
			},
		},
		{
			name:  stageHelpers,
			fatal: true,
			run: func(context.Context) error {
				return scaffold.CreateHelpersModule(b.renderer, run.WorkingDir, b.renderContext())
			},
		},
		{
			name:  stageAuthApp,
			fatal: true,
			run: func(ctx context.Context) error {
				if err := b.commands.StartApp(ctx, settings.AccountsApp); err != nil {
					return err
				}
				return scaffold.CreateAuthAppFiles(b.renderer, run.WorkingDir, b.renderContext())
			},
		},
		{
			name:  stagePatchSettings,
			fatal: true,
			run: func(context.Context) error {
				return b.patchSettings(func(doc settings.Document) (settings.Document, error) {
					return settings.AddAppsAndAuth(doc, run.CustomApp)
				})
			},
		},
		{
			name: stageGitignore,
			run: func(ctx context.Context) error {
				_, err := scaffold.WriteGitignore(ctx, run.WorkingDir, b.gitignoreURL)
				return err
			},
		},
		{
			name: stageMigrations,
			spin: true,
			run:  b.commands.RunMigrations,
		},
	}

	if run.DockerIntegration {
		list = append(list,
			stage{
				name: stageCheckDocker,
				run:  b.dockerCheck,
			},
			stage{
				name:  stageDockerStack,
				fatal: true,
				run: func(context.Context) error {
					return scaffold.CreateDockerSetup(b.renderer, run.WorkingDir, b.renderContext())
				},
			},
			stage{
				name:  stageDockerSettings,
				fatal: true,
				run: func(context.Context) error {
					return b.patchSettings(func(doc settings.Document) (settings.Document, error) {
						return settings.AddDockerSettings(doc, run.ProjectApp)
					})
				},
			},
		)
	}

	return list
}

// validateNames checks every user-supplied identifier before anything is
// written to disk.
func (b *Builder) validateNames() error {
	if err := model.ValidateIdentifier(b.run.ProjectApp); err != nil {
		return err
	}
	if b.run.HasCustomApp() {
		if err := model.ValidateIdentifier(b.run.CustomApp); err != nil {
			return err
		}
	}
	return nil
}

// patchSettings loads settings.py, applies the transform, and writes the
// result back.
func (b *Builder) patchSettings(transform func(settings.Document) (settings.Document, error)) error {
	path := b.run.WorkingDir + "/" + b.run.SettingsPath()

	doc, err := settings.Load(path)
	if err != nil {
		return err
	}
	doc, err = transform(doc)
	if err != nil {
		return err
	}
	return settings.Save(path, doc)
}

// renderContext maps the run onto the template context.
func (b *Builder) renderContext() scaffold.Context {
	return scaffold.Context{
		ProjectName:    b.run.ProjectApp,
		AppName:        b.run.CustomApp,
		ComposeProject: b.run.DockerProject,
		Docker:         b.run.DockerIntegration,
	}
}

// classify maps an error to the CLIError the process exits with. Errors
// that already carry an exit code pass through unchanged.
func classify(err error) *model.CLIError {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var (
		nameErr   *model.InvalidNameError
		regionErr *settings.RegionNotFoundError
		malErr    *settings.MalformedRegionError
		cmdErr    *runner.CommandError
		rwErr     *settings.ReadWriteError
		pathErr   *fs.PathError
	)
	switch {
	case errors.As(err, &nameErr):
		return model.WrapCLIError(model.ExitInvalidName, "invalid name", err)
	case errors.As(err, &regionErr), errors.As(err, &malErr):
		return model.WrapCLIError(model.ExitSettingsError, "failed to patch settings.py", err)
	case errors.As(err, &cmdErr):
		return model.WrapCLIError(model.ExitCommandError, "external command failed", err)
	case errors.As(err, &rwErr), errors.As(err, &pathErr):
		return model.WrapCLIError(model.ExitReadWriteError, "filesystem operation failed", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, "scaffolding failed", err)
	}
}
