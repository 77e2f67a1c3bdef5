package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// OSCommandExecutor implements CommandExecutor with os/exec.
type OSCommandExecutor struct {
	dir string
}

// NewOSCommandExecutor creates an executor running in the current directory.
func NewOSCommandExecutor() *OSCommandExecutor {
	return &OSCommandExecutor{}
}

// WithDir sets the working directory of spawned processes.
func (e *OSCommandExecutor) WithDir(dir string) *OSCommandExecutor {
	e.dir = dir
	return e
}

// Run executes the command with exec.CommandContext, so cancelling ctx kills
// the process. stdout and stderr are captured separately.
func (e *OSCommandExecutor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else if err != nil {
		res.ExitCode = -1
	}
	return res, err
}
