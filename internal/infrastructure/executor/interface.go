package executor

import "context"

// Result is what a finished process produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// CommandExecutor abstracts process execution so adapters that shell out can
// be tested without the real tools installed.
//
// Callers are responsible for the arguments they pass; nothing is run through
// a shell.
type CommandExecutor interface {
	// Run executes name with args and waits for it to exit. A non-zero exit is
	// reported through Result.ExitCode together with a non-nil error so the
	// captured output is still available.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}
