package build

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/jgivc/uploader/internal/entity"
)

// Runner executes the user's build command through the shell in the project
// root. The command's output goes straight to the terminal so the user sees
// the build as it runs.
type Runner struct {
	root   string
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func NewRunner(root string, log *slog.Logger) *Runner {
	return NewRunnerWithIO(root, os.Stdout, os.Stderr, log)
}

func NewRunnerWithIO(root string, stdout, stderr io.Writer, log *slog.Logger) *Runner {
	return &Runner{
		root:   root,
		stdout: stdout,
		stderr: stderr,
		log:    log.With(slog.String("item", "BuildRunner")),
	}
}

// Run executes command with "sh -c". An empty command succeeds without
// starting a process.
func (r *Runner) Run(ctx context.Context, command string) entity.BuildResult {
	res := entity.BuildResult{Command: command}
	if command == "" {
		r.log.Debug("No build command set, skipping build")

		return res
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.root
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			r.log.Debug("Build command failed", slog.Int("exit_code", res.ExitCode))
		} else {
			res.Err = err
			r.log.Debug("Cannot run build command", slog.Any("error", err))
		}
	}

	return res
}
