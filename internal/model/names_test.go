package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateIdentifier exercises the identifier grammar and the reserved
// word sets. The rejected names below are exactly the ones a user is most
// likely to type by accident.
func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantErr    bool
		reason     string
	}{
		{name: "simple lowercase", identifier: "blog", wantErr: false},
		{name: "underscore separated", identifier: "my_app", wantErr: false},
		{name: "plural with underscore", identifier: "user_profiles", wantErr: false},
		{name: "leading underscore", identifier: "_private", wantErr: false},
		{name: "digits after first character", identifier: "app2", wantErr: false},
		{name: "empty", identifier: "", wantErr: true, reason: "must not be empty"},
		{name: "leading digit", identifier: "2fast", wantErr: true, reason: "must not start with a digit"},
		{name: "hyphen", identifier: "my-app", wantErr: true, reason: "not allowed"},
		{name: "space", identifier: "my app", wantErr: true, reason: "not allowed"},
		{name: "dot", identifier: "my.app", wantErr: true, reason: "not allowed"},
		{name: "python keyword", identifier: "class", wantErr: true, reason: "Python keyword"},
		{name: "python keyword import", identifier: "import", wantErr: true, reason: "Python keyword"},
		{name: "framework reserved admin", identifier: "admin", wantErr: true, reason: "reserved by Django"},
		{name: "framework reserved test", identifier: "test", wantErr: true, reason: "reserved by Django"},
		{name: "framework reserved django", identifier: "django", wantErr: true, reason: "reserved by Django"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.identifier)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			// The error must be typed and name the offending identifier,
			// so the CLI message is actionable without extra context.
			var nameErr *InvalidNameError
			require.ErrorAs(t, err, &nameErr)
			assert.Equal(t, tt.identifier, nameErr.Name)
			assert.Contains(t, nameErr.Reason, tt.reason)
		})
	}
}

// TestScaffoldRunSettingsPath verifies that the settings path follows the
// django-admin startproject layout: <project>/settings.py.
func TestScaffoldRunSettingsPath(t *testing.T) {
	run := &ScaffoldRun{ProjectApp: "config"}
	assert.Equal(t, "config/settings.py", run.SettingsPath())
}

// TestCLIErrorUnwrap verifies that CLIError participates in the standard
// error chain so callers can use errors.Is/errors.As on wrapped causes.
func TestCLIErrorUnwrap(t *testing.T) {
	underlying := &InvalidNameError{Name: "2fast", Reason: "must not start with a digit"}
	err := WrapCLIError(ExitInvalidName, "project name rejected", underlying)

	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "2fast", nameErr.Name)
	assert.Contains(t, err.Error(), "project name rejected")
}
