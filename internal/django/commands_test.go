package django

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djangokit/internal/runner"
)

// stubRunner records invocations and can fail a specific command.
type stubRunner struct {
	calls   []string
	failOn  string
	failErr error
}

func (s *stubRunner) Run(_ context.Context, _, name string, args ...string) (runner.Result, error) {
	command := strings.Join(append([]string{name}, args...), " ")
	s.calls = append(s.calls, command)
	if s.failOn != "" && strings.Contains(command, s.failOn) {
		return runner.Result{Command: command, ExitCode: 1}, s.failErr
	}
	return runner.Result{Command: command}, nil
}

func TestStartProject(t *testing.T) {
	stub := &stubRunner{}
	cmds := NewCommands(stub, "/work")

	require.NoError(t, cmds.StartProject(context.Background(), "config"))
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "django-admin startproject config .", stub.calls[0])
}

func TestStartApp(t *testing.T) {
	stub := &stubRunner{}
	cmds := NewCommands(stub, "/work")

	require.NoError(t, cmds.StartApp(context.Background(), "blog"))
	require.Len(t, stub.calls, 1)
	assert.Contains(t, stub.calls[0], "manage.py startapp blog")
}

func TestInstallDependencies(t *testing.T) {
	stub := &stubRunner{}
	cmds := NewCommands(stub, "/work")

	require.NoError(t, cmds.InstallDependencies(context.Background()))
	require.Len(t, stub.calls, 1)
	assert.Contains(t, stub.calls[0], "-m pip install -r requirements.txt")
}

func TestRunMigrationsOrder(t *testing.T) {
	stub := &stubRunner{}
	cmds := NewCommands(stub, "/work")

	require.NoError(t, cmds.RunMigrations(context.Background()))
	require.Len(t, stub.calls, 2)
	assert.Contains(t, stub.calls[0], "makemigrations")
	assert.Contains(t, stub.calls[1], "migrate")
}

func TestRunMigrationsStopsAfterFailure(t *testing.T) {
	stub := &stubRunner{
		failOn:  "makemigrations",
		failErr: &runner.CommandError{Command: "makemigrations", ExitCode: 1},
	}
	cmds := NewCommands(stub, "/work")

	err := cmds.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Len(t, stub.calls, 1, "migrate must not run after makemigrations fails")

	var cmdErr *runner.CommandError
	assert.ErrorAs(t, err, &cmdErr)
}

func TestErrorsNameTheOperation(t *testing.T) {
	stub := &stubRunner{
		failOn:  "startproject",
		failErr: &runner.CommandError{Command: "django-admin startproject config .", ExitCode: 1},
	}
	cmds := NewCommands(stub, "/work")

	err := cmds.StartProject(context.Background(), "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create project "config"`)
}
