// Package cli implements the cobra-based commands for djangokit.
//
// Each subcommand (create, doctor) lives in its own file. This file
// defines the root command, the global flags, and the translation of
// CLIError values into process exit codes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"djangokit/internal/model"
)

// verbose enables detailed logging to stderr. Bound to the persistent
// --verbose flag, so it is available in every subcommand.
var verbose bool

// version, commit, and date are set at build time via ldflags and
// injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The root
// command only provides help text and global flags; the work happens in
// the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "djangokit",
		Short: "Opinionated Django project scaffolder",
		Long: `djangokit generates a ready-to-develop Django project: a configured
project package, a custom user model in its own app, DRF wiring, and an
optional Docker Compose stack with worker, monitoring, and proxy services.

Run it in an empty directory:
  djangokit create`,

		// Errors are formatted by Execute; cobra's own output would
		// duplicate it.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into exit codes.
// CLIError values carry their own code; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes "Error: <message>" to stderr, with the underlying
// cause when present.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
