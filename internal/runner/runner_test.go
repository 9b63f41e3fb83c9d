package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests use /bin/sh, which is present on every platform this tool
// targets (scaffolding Django projects is a POSIX-shell world).

func TestRunCapturesOutput(t *testing.T) {
	r := New()

	result, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "out")
	assert.Contains(t, result.Output, "err", "stderr is captured into the combined output")
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	r := New()
	dir := t.TempDir()

	result, err := r.Run(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, result.Output, dir)
}

func TestRunNonZeroExit(t *testing.T) {
	r := New()

	result, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom; exit 3")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, cmdErr.Output, "boom")
	assert.False(t, cmdErr.TimedOut)
	assert.Contains(t, cmdErr.Error(), "exited with code 3")
}

func TestRunMissingBinary(t *testing.T) {
	r := New()

	_, err := r.Run(context.Background(), t.TempDir(), "djangokit-no-such-binary")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Error(), "could not be run")
}

func TestRunTimeout(t *testing.T) {
	r := New()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, t.TempDir(), "sleep", "5")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.True(t, cmdErr.TimedOut)
	assert.Contains(t, cmdErr.Error(), "timed out")
}

func TestLookPath(t *testing.T) {
	assert.True(t, LookPath("sh"))
	assert.False(t, LookPath("djangokit-no-such-binary"))
}
