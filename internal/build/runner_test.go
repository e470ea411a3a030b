package build

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, stdout, stderr io.Writer) *Runner {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	return NewRunnerWithIO(t.TempDir(), stdout, stderr, log)
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name     string
		command  string
		exitCode int
	}{
		{
			name:    "success",
			command: "true",
		},
		{
			name:     "non-zero exit",
			command:  "exit 3",
			exitCode: 3,
		},
		{
			name:    "empty command is a no-op success",
			command: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRunner(t, io.Discard, io.Discard)

			res := r.Run(context.Background(), tc.command)
			require.NoError(t, res.Err)
			require.Equal(t, tc.exitCode, res.ExitCode)
			require.Equal(t, tc.exitCode == 0, res.Success())
		})
	}
}

func TestRunOutputReachesUser(t *testing.T) {
	var stdout bytes.Buffer
	r := newTestRunner(t, &stdout, io.Discard)

	res := r.Run(context.Background(), "echo building")
	require.True(t, res.Success())
	require.Contains(t, stdout.String(), "building")
}

func TestRunRunsInProjectRoot(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	root := t.TempDir()

	var stdout bytes.Buffer
	r := NewRunnerWithIO(root, &stdout, io.Discard, log)

	res := r.Run(context.Background(), "pwd")
	require.True(t, res.Success())
	require.Contains(t, stdout.String(), root)
}
