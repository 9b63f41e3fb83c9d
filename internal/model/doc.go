// Package model defines the domain types for the djangokit CLI.
//
// This package contains pure data structures with no external dependencies:
// the ScaffoldRun context passed through every orchestration stage, the
// identifier validation rules for project and app names, and the exit codes
// plus the CLIError type that carries them to the process boundary.
//
// Nothing in here is persisted; a ScaffoldRun lives exactly as long as one
// `djangokit create` invocation.
package model
