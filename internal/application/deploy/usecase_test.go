package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/suideploy/internal/application/dto"
	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

type useCaseFixture struct {
	compiler *fakeCompiler
	encoder  *fakeEncoder
	chain    *fakeChain
	ledger   *memLedger
	signer   *fakeSigner
	uc       *DeployUseCase
}

func newUseCaseFixture(build *deploy.BuildOutput, dryRun *deploy.ExecutionStatus) *useCaseFixture {
	f := &useCaseFixture{
		compiler: &fakeCompiler{out: build},
		encoder:  &fakeEncoder{},
		chain: &fakeChain{
			dryRun:  &ports.TransactionResponse{Status: dryRun},
			execute: executedResponse(),
		},
		ledger: &memLedger{},
		signer: &fakeSigner{addr: testSender},
	}
	gate := NewSubmissionGate(f.encoder, f.chain, nopLogger{})
	f.uc = NewDeployUseCase(f.compiler, NewAssembler(0), gate, f.ledger, nopLogger{})
	f.uc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestDeployUseCase_PublishSuccess(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), success())

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec:    deploy.PublishSpec{PackagePath: "./contract"},
		Signer:  f.signer,
		Network: "mainnet",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.compiler.calls)
	assert.Len(t, f.chain.executes, 1)
	require.NotNil(t, out.Report)
	assert.True(t, out.Report.Executed)
	assert.NotEmpty(t, out.Report.RunID)
	assert.Equal(t, deploy.KindPublish, out.Report.Kind)
	assert.Equal(t, "mainnet", out.Report.Network)
	assert.NotNil(t, out.Report.GasUsed)
	assert.NotEmpty(t, out.Report.TransactionDigest)

	require.Len(t, f.ledger.records, 1)
	rec := f.ledger.records[0]
	assert.Equal(t, out.Report.RunID, rec.RunID)
	assert.Equal(t, out.Report.TransactionDigest, rec.TransactionDigest)
	assert.Equal(t, testSender.String(), rec.Sender)
	assert.Equal(t, "success", rec.Status)
}

func TestDeployUseCase_PredictedFailure(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), failure("InsufficientGas"))

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec:   deploy.PublishSpec{PackagePath: "./contract"},
		Signer: f.signer,
	})
	require.NoError(t, err)

	assert.True(t, out.Report.Aborted)
	assert.Empty(t, f.chain.executes)
	assert.Empty(t, f.ledger.records)
}

func TestDeployUseCase_Upgrade(t *testing.T) {
	f := newUseCaseFixture(upgradeBuild(), success())

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{Spec: upgradeSpec(), Signer: f.signer})
	require.NoError(t, err)

	require.Len(t, out.Plan.Commands, 4)
	assert.Equal(t, deploy.KindUpgrade, out.Report.Kind)
	assert.Len(t, f.chain.executes, 1)
}

func TestDeployUseCase_UpgradeBuildWithoutDigest(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), success())

	_, err := f.uc.Execute(context.Background(), dto.DeployInput{Spec: upgradeSpec(), Signer: f.signer})

	var berr *deploy.BuildError
	require.ErrorAs(t, err, &berr)
	assert.Empty(t, f.chain.dryRuns)
}

func TestDeployUseCase_KeyErrorBeforeAnyCall(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), success())

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec: deploy.PublishSpec{PackagePath: "./contract"},
	})
	assert.Nil(t, out)

	var kerr *deploy.KeyError
	require.ErrorAs(t, err, &kerr)
	assert.Zero(t, f.compiler.calls)
	assert.Zero(t, f.encoder.calls)
	assert.Empty(t, f.chain.dryRuns)
	assert.Empty(t, f.chain.executes)
}

func TestDeployUseCase_InvalidSpecFailsFast(t *testing.T) {
	f := newUseCaseFixture(upgradeBuild(), success())

	_, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec:   deploy.UpgradeSpec{PackagePath: "./contract"},
		Signer: f.signer,
	})

	var verr *deploy.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, f.compiler.calls)
}

func TestDeployUseCase_LedgerFailureDoesNotFailRun(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), success())
	f.ledger.err = errors.New("database locked")

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec:   deploy.PublishSpec{PackagePath: "./contract"},
		Signer: f.signer,
	})
	require.NoError(t, err)
	assert.True(t, out.Report.Executed)
}

func TestDeployUseCase_ExecuteErrorKeepsReport(t *testing.T) {
	f := newUseCaseFixture(publishBuild(), success())
	f.chain.executeErr = errors.New("503 service unavailable")

	out, err := f.uc.Execute(context.Background(), dto.DeployInput{
		Spec:   deploy.PublishSpec{PackagePath: "./contract"},
		Signer: f.signer,
	})
	require.Error(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.Report)
	assert.True(t, out.Report.PredictedStatus.Succeeded())
	assert.False(t, out.Report.Executed)
	assert.Empty(t, f.ledger.records)
}

// debugLogger keeps Debug lines so the verbose plan dump can be checked.
type debugLogger struct {
	nopLogger
	lines []string
}

func (l *debugLogger) Debug(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *debugLogger) IsVerbose() bool { return true }

func TestDeployUseCase_VerbosePlanDump(t *testing.T) {
	f := newUseCaseFixture(upgradeBuild(), success())
	logger := &debugLogger{}
	f.uc.logger = logger

	_, err := f.uc.Execute(context.Background(), dto.DeployInput{Spec: upgradeSpec(), Signer: f.signer})
	require.NoError(t, err)

	dump := strings.Join(logger.lines, "\n")
	assert.Contains(t, dump, "Gas budget: 1000000000 MIST")
	assert.Contains(t, dump, "command 0: MoveCall")
	assert.Contains(t, dump, "-> consumed by [1]")
	assert.Contains(t, dump, "-> consumed by [2]")
	assert.Contains(t, dump, "command 3: TransferObjects")
}
