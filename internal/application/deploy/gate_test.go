package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

func publishPlan(t *testing.T) *deploy.TransactionPlan {
	t.Helper()
	plan, err := NewAssembler(0).Assemble(deploy.PublishSpec{PackagePath: "./contract"}, publishBuild(), testSender)
	require.NoError(t, err)
	return plan
}

func executedResponse() *ports.TransactionResponse {
	return &ports.TransactionResponse{
		Digest: "7Wf1zQvNc5aDpWkLB9b4Gt1yR6JqBz6nS7v9C3xQmHjA",
		Status: success(),
		GasUsed: &deploy.GasSummary{
			ComputationCost: 1_000_000,
			StorageCost:     25_000_000,
			StorageRebate:   978_120,
		},
		PackageID:    "0x0000000000000000000000000000000000000000000000000000000000000abc",
		UpgradeCapID: "0x0000000000000000000000000000000000000000000000000000000000000def",
	}
}

func TestSubmissionGate_SuccessExecutesOnce(t *testing.T) {
	chain := &fakeChain{
		dryRun:  &ports.TransactionResponse{Status: success()},
		execute: executedResponse(),
	}
	signer := &fakeSigner{addr: testSender}
	gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{})

	report, err := gate.Submit(context.Background(), publishPlan(t), signer)
	require.NoError(t, err)

	require.Len(t, chain.dryRuns, 1)
	require.Len(t, chain.executes, 1)
	assert.Equal(t, chain.dryRuns[0], chain.executes[0].txBytes, "executed bytes must match simulated bytes")
	require.Len(t, signer.signed, 1)
	assert.Equal(t, chain.dryRuns[0], signer.signed[0])
	assert.Len(t, chain.executes[0].signatures, 1)

	assert.True(t, report.Executed)
	assert.False(t, report.Aborted)
	assert.True(t, report.PredictedStatus.Succeeded())
	assert.True(t, report.ExecutedStatus.Succeeded())
	require.NotNil(t, report.GasUsed)
	assert.Equal(t, "25021880", report.GasUsed.Net().String())
	assert.Equal(t, "7Wf1zQvNc5aDpWkLB9b4Gt1yR6JqBz6nS7v9C3xQmHjA", report.TransactionDigest)
	assert.Equal(t, testSender, report.Sender)
	assert.NotEmpty(t, report.PackageID)
	assert.NotEmpty(t, report.UpgradeCapID)
}

func TestSubmissionGate_PredictedFailureDoesNotExecute(t *testing.T) {
	tests := []struct {
		name   string
		status *deploy.ExecutionStatus
	}{
		{name: "insufficient gas", status: failure("InsufficientGas")},
		{name: "invalid object", status: failure("InvalidObject")},
		{name: "status absent", status: nil},
		{name: "empty status", status: &deploy.ExecutionStatus{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: tt.status}}
			signer := &fakeSigner{addr: testSender}
			gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{})

			report, err := gate.Submit(context.Background(), publishPlan(t), signer)
			require.NoError(t, err)

			assert.Len(t, chain.dryRuns, 1)
			assert.Empty(t, chain.executes)
			assert.Empty(t, signer.signed)
			assert.True(t, report.Aborted)
			assert.Equal(t, AbortPredictedFailure, report.AbortReason)
			assert.False(t, report.Executed)
			assert.Equal(t, tt.status, report.PredictedStatus)
			assert.Empty(t, report.TransactionDigest)
		})
	}
}

func TestSubmissionGate_UpgradeInvalidCapabilityAborts(t *testing.T) {
	plan, err := NewAssembler(0).Assemble(upgradeSpec(), upgradeBuild(), testSender)
	require.NoError(t, err)

	chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: failure("InvalidObject")}}
	gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{})

	report, err := gate.Submit(context.Background(), plan, &fakeSigner{addr: testSender})
	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.Empty(t, chain.executes)
	assert.Equal(t, "failure: InvalidObject", report.PredictedStatus.String())
}

func TestSubmissionGate_SimulateOnly(t *testing.T) {
	chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: success()}}
	gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{}, WithSimulateOnly(true))

	report, err := gate.Submit(context.Background(), publishPlan(t), &fakeSigner{addr: testSender})
	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.Equal(t, AbortSimulateOnly, report.AbortReason)
	assert.Empty(t, chain.executes)
}

func TestSubmissionGate_Confirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: success()}}
		confirmer := &fakeConfirmer{answer: false}
		gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{}, WithConfirmer(confirmer))

		report, err := gate.Submit(context.Background(), publishPlan(t), &fakeSigner{addr: testSender})
		require.NoError(t, err)
		assert.Equal(t, 1, confirmer.asked)
		require.NotNil(t, confirmer.seen)
		assert.Equal(t, deploy.KindPublish, confirmer.seen.Kind)
		assert.True(t, confirmer.seen.PredictedStatus.Succeeded())
		assert.Equal(t, AbortDeclined, report.AbortReason)
		assert.Empty(t, chain.executes)
	})

	t.Run("accepted", func(t *testing.T) {
		chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: success()}, execute: executedResponse()}
		confirmer := &fakeConfirmer{answer: true}
		gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{}, WithConfirmer(confirmer))

		report, err := gate.Submit(context.Background(), publishPlan(t), &fakeSigner{addr: testSender})
		require.NoError(t, err)
		assert.True(t, report.Executed)
		assert.Len(t, chain.executes, 1)
	})

	t.Run("not asked when simulation fails", func(t *testing.T) {
		chain := &fakeChain{dryRun: &ports.TransactionResponse{Status: failure("InsufficientGas")}}
		confirmer := &fakeConfirmer{answer: true}
		gate := NewSubmissionGate(&fakeEncoder{}, chain, nopLogger{}, WithConfirmer(confirmer))

		_, err := gate.Submit(context.Background(), publishPlan(t), &fakeSigner{addr: testSender})
		require.NoError(t, err)
		assert.Zero(t, confirmer.asked)
	})
}

func TestSubmissionGate_Errors(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name    string
		encoder *fakeEncoder
		chain   *fakeChain
		stage   string
	}{
		{
			name:    "encode",
			encoder: &fakeEncoder{err: boom},
			chain:   &fakeChain{},
			stage:   deploy.StageEncode,
		},
		{
			name:    "dry-run",
			encoder: &fakeEncoder{},
			chain:   &fakeChain{dryRunErr: boom},
			stage:   deploy.StageDryRun,
		},
		{
			name:    "execute",
			encoder: &fakeEncoder{},
			chain:   &fakeChain{dryRun: &ports.TransactionResponse{Status: success()}, executeErr: boom},
			stage:   deploy.StageExecute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewSubmissionGate(tt.encoder, tt.chain, nopLogger{})
			_, err := gate.Submit(context.Background(), publishPlan(t), &fakeSigner{addr: testSender})

			var serr *deploy.SubmissionError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.stage, serr.Stage)
			assert.ErrorIs(t, err, boom)
			assert.LessOrEqual(t, len(tt.chain.executes), 1)
		})
	}
}
