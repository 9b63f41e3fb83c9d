package cli

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"djangokit/internal/django"
	"djangokit/internal/docker"
	"djangokit/internal/runner"
)

// doctorCheck is one environment probe: a tool or daemon the scaffolder
// uses, and whether a missing one blocks project creation.
type doctorCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) error
}

// NewDoctorCommand creates the "doctor" cobra command, which reports
// whether the external tools the scaffolder depends on are available.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the required external tools are available",
		Long: `Check the environment for the tools djangokit invokes: django-admin,
a Python interpreter, pip, and the Docker daemon. Docker is only needed
for --docker runs; everything else is required.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd)
		},
	}
}

// runDoctor executes every probe and prints a status table. The command
// itself always succeeds: doctor is a report, not a gate.
func runDoctor(cmd *cobra.Command) error {
	checks := []doctorCheck{
		{
			name:     django.AdminBinary,
			required: true,
			probe: func(context.Context) error {
				return lookPathErr(django.AdminBinary)
			},
		},
		{
			name:     "python interpreter",
			required: true,
			probe: func(context.Context) error {
				if runner.LookPath("python3") || runner.LookPath("python") {
					return nil
				}
				return fmt.Errorf("neither python3 nor python found in PATH")
			},
		},
		{
			name:     "pip",
			required: true,
			probe: func(ctx context.Context) error {
				python := "python"
				if runner.LookPath("python3") {
					python = "python3"
				}
				_, err := runner.New().Run(ctx, "", python, "-m", "pip", "--version")
				return err
			},
		},
		{
			name:     "Docker daemon",
			required: false,
			probe:    docker.DaemonReachable,
		},
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})

	for _, c := range checks {
		err := c.probe(cmd.Context())
		switch {
		case err == nil:
			t.AppendRow(table.Row{c.name, text.FgGreen.Sprint("ok"), ""})
		case c.required:
			t.AppendRow(table.Row{c.name, text.FgRed.Sprint("missing"), err.Error()})
		default:
			t.AppendRow(table.Row{c.name, text.FgYellow.Sprint("unavailable"), err.Error()})
		}
		VerboseLog("doctor check %q: %v", c.name, err)
	}

	t.Render()
	return nil
}

// lookPathErr adapts runner.LookPath to an error result for probes.
func lookPathErr(name string) error {
	if runner.LookPath(name) {
		return nil
	}
	return fmt.Errorf("%s not found in PATH", name)
}
