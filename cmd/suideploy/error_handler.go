package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/domain/common"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

// reportedError is returned once handleCommandError has printed the error,
// so that cobra only sets the exit status. The cause stays reachable through
// errors.As.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// handleCommandError prints err with its recovery hint and tells cobra not to
// print it again.
func handleCommandError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	if common.ShouldSilenceUsage(err) {
		cmd.SilenceUsage = true
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, output.RedSeparator())
	fmt.Fprintf(w, "Error: %s\n", common.GetUserMessage(err))
	if hint := common.GetRecoveryHint(err); hint != "" {
		fmt.Fprintf(w, "\nHint: %s\n", hint)
	}

	cmd.SilenceErrors = true
	return &reportedError{err: err}
}
