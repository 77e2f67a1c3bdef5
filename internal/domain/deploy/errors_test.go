package deploy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altuslabsxyz/suideploy/internal/domain/common"
)

func TestBuildError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &BuildError{Path: "../contract", Message: "compiler failed", Stderr: "error[E01]: unbound module\n", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "build of ../contract failed: compiler failed: exit status 1", err.Error())

	wrapped := fmt.Errorf("publish: %w", err)
	assert.True(t, common.ShouldSilenceUsage(wrapped))
	assert.Contains(t, common.GetUserMessage(wrapped), "compiler stderr:\nerror[E01]: unbound module")
	assert.NotContains(t, common.GetUserMessage(wrapped), "compiler stdout")
	assert.Contains(t, common.GetRecoveryHint(wrapped), "sui move build")
}

func TestKeyError(t *testing.T) {
	err := &KeyError{Message: "PRIVATE_KEY is not set"}
	assert.Equal(t, "invalid signing key: PRIVATE_KEY is not set", err.Error())
	assert.Contains(t, common.GetRecoveryHint(err), "PRIVATE_KEY")
	assert.True(t, common.ShouldSilenceUsage(err))
}

func TestSubmissionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &SubmissionError{Stage: StageDryRun, Message: "simulation request failed", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dry-run failed: simulation request failed: connection refused", err.Error())
	assert.Empty(t, err.RecoveryHint())

	exec := &SubmissionError{Stage: StageExecute, Message: "timeout"}
	assert.Equal(t, "execute failed: timeout", exec.Error())
	assert.Contains(t, exec.RecoveryHint(), "may still have landed")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "gas_budget", Message: "must be positive"}
	assert.Equal(t, "invalid gas_budget: must be positive", err.Error())
	assert.Equal(t, err.Error(), common.GetUserMessage(err))
	assert.Empty(t, common.GetRecoveryHint(err))
}
