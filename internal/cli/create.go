// Package cli — create.go implements the "djangokit create" command.
//
// The create command is the primary user-facing operation. It collects
// the project and app names (from flags or interactive prompts), builds
// the ScaffoldRun, and hands it to the builder, which runs the staged
// scaffolding sequence.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"djangokit/internal/builder"
	"djangokit/internal/model"
	"djangokit/internal/runner"
	"djangokit/internal/scaffold"
)

// defaultProjectApp is the project package name used when the user just
// presses enter at the prompt.
const defaultProjectApp = "config"

// createFlags holds the flag values for the create command. Every prompt
// has a flag equivalent so the command can run non-interactively.
type createFlags struct {
	project        string // --project: project package name
	app            string // --app: custom application name
	docker         bool   // --docker: generate the Compose stack
	composeProject string // --compose-project: Compose project name
	yes            bool   // --yes: accept defaults, never prompt
}

// NewCreateCommand creates the "create" cobra command.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new Django project in the current directory",
		Long: `Create a new Django project with an opinionated layout: a project
package, an accounts app with a custom User model, a shared helpers
module, DRF registration, requirements.txt, and .gitignore.

With --docker, a full Docker Compose stack is generated alongside:
web, Celery worker and beat, Flower, nginx, PostgreSQL, Redis, Mailpit,
Prometheus, Alertmanager, and Grafana.

Examples:
  djangokit create
  djangokit create --project config --app blog
  djangokit create --docker --yes
  djangokit create --app shop --docker --compose-project shop`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.project, "project", "", "Project package name (default: prompted, \"config\")")
	cmd.Flags().StringVar(&flags.app, "app", "", "Custom application name (default: prompted)")
	cmd.Flags().BoolVar(&flags.docker, "docker", false, "Generate the Docker Compose stack")
	cmd.Flags().StringVar(&flags.composeProject, "compose-project", "", "Compose project name (default: project name)")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Accept defaults and skip all prompts")

	return cmd
}

// runCreate resolves the run configuration and executes the builder.
func runCreate(cmd *cobra.Command, flags *createFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	run, err := resolveRun(cmd, flags, cwd)
	if err != nil {
		return err
	}
	VerboseLog("Project package: %s", run.ProjectApp)
	VerboseLog("Custom app: %q", run.CustomApp)
	VerboseLog("Docker integration: %v", run.DockerIntegration)

	renderer, err := scaffold.NewRenderer()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load templates", err)
	}

	b := builder.New(run, runner.New(), renderer, cmd.OutOrStdout())
	// The spinner and verbose logging fight over the terminal; verbose
	// runs get plain stage lines instead.
	b.SetInteractive(!verbose)

	_, err = b.Setup(cmd.Context())
	return err
}

// resolveRun builds the ScaffoldRun from flags, prompting for anything
// not supplied. All names are validated here so bad input fails before
// any file is written.
func resolveRun(cmd *cobra.Command, flags *createFlags, cwd string) (*model.ScaffoldRun, error) {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	projectApp := flags.project
	if projectApp == "" {
		if flags.yes {
			projectApp = defaultProjectApp
		} else {
			answer, err := prompt(in, out,
				fmt.Sprintf("Project package name [%s]: ", defaultProjectApp))
			if err != nil {
				return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read input", err)
			}
			if answer == "" {
				answer = defaultProjectApp
			}
			projectApp = answer
		}
	}
	if err := model.ValidateIdentifier(projectApp); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidName, "invalid project name", err)
	}

	customApp := flags.app
	if customApp == "" && !flags.yes {
		wantApp, err := confirm(in, out, "Create a custom app? [Y/n]: ")
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read input", err)
		}
		if wantApp {
			for customApp == "" {
				customApp, err = prompt(in, out, "Application name: ")
				if err != nil {
					return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read input", err)
				}
				if customApp == "" {
					fmt.Fprintln(out, "Application name is required.")
				}
			}
		}
	}
	if customApp != "" {
		if err := model.ValidateIdentifier(customApp); err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidName, "invalid app name", err)
		}
	}

	composeProject := flags.composeProject
	if composeProject == "" {
		composeProject = projectApp
	}

	return &model.ScaffoldRun{
		ProjectApp:        projectApp,
		CustomApp:         customApp,
		DockerIntegration: flags.docker,
		DockerProject:     composeProject,
		WorkingDir:        cwd,
	}, nil
}

// prompt prints the message and reads one trimmed line of input. An EOF
// on a line with content counts as a normal answer so piped input works;
// an EOF with nothing read is surfaced so callers do not loop forever on
// exhausted input.
func prompt(in *bufio.Reader, out io.Writer, message string) (string, error) {
	fmt.Fprint(out, message)
	line, err := in.ReadString('\n')
	answer := strings.TrimSpace(line)
	if err != nil && (err != io.EOF || answer == "") {
		return "", err
	}
	return answer, nil
}

// confirm asks a yes/no question. Empty input means yes.
func confirm(in *bufio.Reader, out io.Writer, message string) (bool, error) {
	answer, err := prompt(in, out, message)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y" || answer == "yes", nil
}
