package dto

import (
	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// DeployInput contains everything one publish or upgrade run needs.
type DeployInput struct {
	// Spec selects the workflow: deploy.PublishSpec or deploy.UpgradeSpec.
	Spec deploy.Spec

	// Signer is the deployer identity, derived before any side effect.
	Signer ports.Signer

	// Network labels the run in the report and the ledger (e.g. "mainnet").
	Network string
}

// DeployOutput is the result of a run that got as far as the gate.
type DeployOutput struct {
	Build  *deploy.BuildOutput
	Plan   *deploy.TransactionPlan
	Report *deploy.OutcomeReport
}
