// Package main is the entry point for the djangokit CLI.
//
// The binary scaffolds opinionated Django projects. All functionality
// lives in the internal/cli package; this file only injects build-time
// version information and hands off to cobra.
package main

import (
	"djangokit/internal/cli"
)

// version, commit, and date are set at build time via ldflags. During
// development they default to "dev", "none", and "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
