package deploy

import (
	"context"

	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// Abort reasons reported when the gate does not execute.
const (
	AbortPredictedFailure = "dry-run predicted failure"
	AbortSimulateOnly     = "dry-run only"
	AbortDeclined         = "execution declined by operator"
)

// SubmissionGate dry-runs a plan and executes it only when the simulation
// succeeds. Both submissions carry the same encoded bytes.
type SubmissionGate struct {
	encoder      ports.TransactionEncoder
	client       ports.ChainClient
	logger       ports.Logger
	confirmer    ports.Confirmer
	simulateOnly bool
}

// GateOption configures a SubmissionGate.
type GateOption func(*SubmissionGate)

// WithConfirmer asks the operator before executing.
func WithConfirmer(c ports.Confirmer) GateOption {
	return func(g *SubmissionGate) { g.confirmer = c }
}

// WithSimulateOnly stops after the dry-run regardless of its outcome.
func WithSimulateOnly(simulateOnly bool) GateOption {
	return func(g *SubmissionGate) { g.simulateOnly = simulateOnly }
}

// NewSubmissionGate creates a SubmissionGate.
func NewSubmissionGate(encoder ports.TransactionEncoder, client ports.ChainClient, logger ports.Logger, opts ...GateOption) *SubmissionGate {
	g := &SubmissionGate{
		encoder: encoder,
		client:  client,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit runs simulate -> decide -> execute. A predicted failure is not an
// error: the returned report has Aborted set and nothing is broadcast.
func (g *SubmissionGate) Submit(ctx context.Context, plan *deploy.TransactionPlan, signer ports.Signer) (*deploy.OutcomeReport, error) {
	report := &deploy.OutcomeReport{Kind: plan.Kind(), Sender: signer.Address()}

	txBytes, err := g.encoder.Encode(ctx, plan, report.Sender)
	if err != nil {
		return report, asSubmissionError(deploy.StageEncode, "could not encode transaction", err)
	}
	g.logger.Debug("Encoded transaction: %d bytes, gas budget %d", len(txBytes), plan.GasBudget)

	g.logger.Info("Simulating transaction...")
	simulated, err := g.client.DryRun(ctx, txBytes)
	if err != nil {
		return report, asSubmissionError(deploy.StageDryRun, "dry-run request failed", err)
	}
	report.PredictedStatus = simulated.Status
	report.PredictedGas = simulated.GasUsed

	if !simulated.Status.Succeeded() {
		g.logger.Warn("Dry-run predicts failure (%s); transaction will not be submitted", simulated.Status)
		return abort(report, AbortPredictedFailure), nil
	}
	g.logger.Success("Dry-run succeeded")

	if g.simulateOnly {
		return abort(report, AbortSimulateOnly), nil
	}
	if g.confirmer != nil {
		ok, err := g.confirmer.Confirm(report)
		if err != nil {
			return report, err
		}
		if !ok {
			return abort(report, AbortDeclined), nil
		}
	}

	signature, err := signer.SignTransaction(txBytes)
	if err != nil {
		return report, asSubmissionError(deploy.StageSign, "could not sign transaction", err)
	}

	g.logger.Info("Executing transaction...")
	executed, err := g.client.Execute(ctx, txBytes, []string{signature})
	if err != nil {
		return report, asSubmissionError(deploy.StageExecute, "execute request failed", err)
	}

	report.Executed = true
	report.ExecutedStatus = executed.Status
	report.GasUsed = executed.GasUsed
	report.TransactionDigest = executed.Digest
	report.PackageID = executed.PackageID
	report.UpgradeCapID = executed.UpgradeCapID
	return report, nil
}

func abort(report *deploy.OutcomeReport, reason string) *deploy.OutcomeReport {
	report.Aborted = true
	report.AbortReason = reason
	return report
}

// asSubmissionError keeps an existing SubmissionError and wraps anything else.
func asSubmissionError(stage, message string, err error) error {
	if se, ok := err.(*deploy.SubmissionError); ok {
		return se
	}
	return &deploy.SubmissionError{Stage: stage, Message: message, Err: err}
}
