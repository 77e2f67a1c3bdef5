// Package ports holds the interfaces the deploy workflows need from the
// infrastructure layer.
package ports

import (
	"context"
	"io"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// PackageCompiler builds a Move package into deployable bytecode.
type PackageCompiler interface {
	// Build compiles the package at path. When requireDigest is set the output
	// must carry the package digest needed to authorize an upgrade.
	Build(ctx context.Context, path string, requireDigest bool) (*deploy.BuildOutput, error)
}

// Signer is the deployer identity.
type Signer interface {
	Address() deploy.Address
	// SignTransaction signs BCS encoded transaction data and returns the
	// serialized signature in the form the fullnode expects.
	SignTransaction(txBytes []byte) (string, error)
}

// TransactionEncoder turns a plan into the exact bytes that are simulated and
// executed.
type TransactionEncoder interface {
	Encode(ctx context.Context, plan *deploy.TransactionPlan, sender deploy.Address) ([]byte, error)
}

// TransactionResponse is the part of a dry-run or execution response the
// deployer cares about.
type TransactionResponse struct {
	Digest       string
	Status       *deploy.ExecutionStatus
	GasUsed      *deploy.GasSummary
	PackageID    string
	UpgradeCapID string
}

// ChainClient submits encoded transactions to a fullnode.
type ChainClient interface {
	DryRun(ctx context.Context, txBytes []byte) (*TransactionResponse, error)
	Execute(ctx context.Context, txBytes []byte, signatures []string) (*TransactionResponse, error)
}

// DeploymentLedger keeps a local history of executed deployments.
type DeploymentLedger interface {
	Record(ctx context.Context, rec *deploy.DeploymentRecord) error
	List(ctx context.Context, limit int) ([]*deploy.DeploymentRecord, error)
}

// Confirmer asks the operator whether a successfully simulated transaction
// should be executed.
type Confirmer interface {
	Confirm(report *deploy.OutcomeReport) (bool, error)
}

// Logger is the console the workflows report progress on. Debug output is
// only shown when IsVerbose is true.
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
	IsVerbose() bool

	// Writer and ErrWriter expose the underlying streams.
	Writer() io.Writer
	ErrWriter() io.Writer
}
