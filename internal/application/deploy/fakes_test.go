package deploy

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Success(string, ...interface{}) {}
func (nopLogger) IsVerbose() bool                { return false }
func (nopLogger) Writer() io.Writer              { return io.Discard }
func (nopLogger) ErrWriter() io.Writer           { return io.Discard }

var testSender = deploy.Address{0xde, 0xad, 0xbe, 0xef}

type fakeSigner struct {
	addr   deploy.Address
	signed [][]byte
}

func (s *fakeSigner) Address() deploy.Address { return s.addr }

func (s *fakeSigner) SignTransaction(txBytes []byte) (string, error) {
	s.signed = append(s.signed, append([]byte(nil), txBytes...))
	return fmt.Sprintf("sig-%x", sha256.Sum256(txBytes)), nil
}

type fakeCompiler struct {
	out   *deploy.BuildOutput
	err   error
	calls int
}

func (c *fakeCompiler) Build(_ context.Context, _ string, requireDigest bool) (*deploy.BuildOutput, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if err := c.out.Check(requireDigest); err != nil {
		return nil, &deploy.BuildError{Message: err.Error()}
	}
	return c.out, nil
}

// fakeEncoder renders the plan's structure, so equal plans give equal bytes.
type fakeEncoder struct {
	err   error
	calls int
}

func (e *fakeEncoder) Encode(_ context.Context, plan *deploy.TransactionPlan, sender deploy.Address) ([]byte, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []byte(fmt.Sprintf("%s|%d|%v", sender, plan.GasBudget, plan.Commands)), nil
}

type executeCall struct {
	txBytes    []byte
	signatures []string
}

type fakeChain struct {
	dryRun     *ports.TransactionResponse
	dryRunErr  error
	execute    *ports.TransactionResponse
	executeErr error

	dryRuns  [][]byte
	executes []executeCall
}

func (c *fakeChain) DryRun(_ context.Context, txBytes []byte) (*ports.TransactionResponse, error) {
	c.dryRuns = append(c.dryRuns, append([]byte(nil), txBytes...))
	if c.dryRunErr != nil {
		return nil, c.dryRunErr
	}
	return c.dryRun, nil
}

func (c *fakeChain) Execute(_ context.Context, txBytes []byte, signatures []string) (*ports.TransactionResponse, error) {
	c.executes = append(c.executes, executeCall{txBytes: append([]byte(nil), txBytes...), signatures: signatures})
	if c.executeErr != nil {
		return nil, c.executeErr
	}
	return c.execute, nil
}

type fakeConfirmer struct {
	answer bool
	asked  int
	seen   *deploy.OutcomeReport
}

func (c *fakeConfirmer) Confirm(r *deploy.OutcomeReport) (bool, error) {
	c.asked++
	c.seen = r
	return c.answer, nil
}

type memLedger struct {
	records []*deploy.DeploymentRecord
	err     error
}

func (l *memLedger) Record(_ context.Context, rec *deploy.DeploymentRecord) error {
	if l.err != nil {
		return l.err
	}
	l.records = append(l.records, rec)
	return nil
}

func (l *memLedger) List(_ context.Context, limit int) ([]*deploy.DeploymentRecord, error) {
	if limit > 0 && limit < len(l.records) {
		return l.records[:limit], nil
	}
	return l.records, nil
}

func success() *deploy.ExecutionStatus {
	return &deploy.ExecutionStatus{Status: deploy.StatusSuccess}
}

func failure(reason string) *deploy.ExecutionStatus {
	return &deploy.ExecutionStatus{Status: "failure", Error: reason}
}
