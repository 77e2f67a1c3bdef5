package deploy

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/suideploy/internal/application/dto"
	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// DeployUseCase runs one publish or upgrade: identity -> build -> assemble ->
// gate -> record. Every step runs to completion before the next starts.
type DeployUseCase struct {
	compiler  ports.PackageCompiler
	assembler *Assembler
	gate      *SubmissionGate
	ledger    ports.DeploymentLedger
	logger    ports.Logger
	now       func() time.Time
}

// NewDeployUseCase creates a DeployUseCase. ledger may be nil.
func NewDeployUseCase(
	compiler ports.PackageCompiler,
	assembler *Assembler,
	gate *SubmissionGate,
	ledger ports.DeploymentLedger,
	logger ports.Logger,
) *DeployUseCase {
	return &DeployUseCase{
		compiler:  compiler,
		assembler: assembler,
		gate:      gate,
		ledger:    ledger,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute performs the workflow selected by input.Spec. A dry-run that
// predicts failure returns a report with Aborted set and a nil error.
func (uc *DeployUseCase) Execute(ctx context.Context, input dto.DeployInput) (*dto.DeployOutput, error) {
	if input.Spec == nil {
		return nil, &deploy.ValidationError{Field: "spec", Message: "no workflow selected"}
	}
	if err := input.Spec.Validate(); err != nil {
		return nil, err
	}

	signer := input.Signer
	if signer == nil {
		return nil, &deploy.KeyError{Message: "no deployer identity"}
	}
	uc.logger.Info("Deployer address: %s", signer.Address())

	kind := input.Spec.Kind()
	uc.logger.Info("Building package %s...", input.Spec.SourcePath())
	build, err := uc.compiler.Build(ctx, input.Spec.SourcePath(), kind == deploy.KindUpgrade)
	if err != nil {
		return nil, err
	}
	uc.logger.Success("Built %d modules with %d dependencies", len(build.Modules), len(build.Dependencies))
	for _, dep := range build.Dependencies {
		uc.logger.Debug("  dependency %s", dep)
	}

	plan, err := uc.assembler.Assemble(input.Spec, build, signer.Address())
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("Gas budget: %d MIST", uc.assembler.GasBudget())
	for i, c := range plan.Commands {
		if next := plan.Consumers(i); len(next) > 0 {
			uc.logger.Debug("  command %d: %s -> consumed by %v", i, c, next)
			continue
		}
		uc.logger.Debug("  command %d: %s", i, c)
	}

	out := &dto.DeployOutput{Build: build, Plan: plan}
	report, err := uc.gate.Submit(ctx, plan, signer)
	if report != nil {
		report.RunID = uuid.NewString()
		report.Kind = kind
		report.Network = input.Network
		out.Report = report
	}
	if err != nil {
		return out, err
	}

	if report.Executed {
		uc.record(ctx, report)
	}
	return out, nil
}

// record stores an executed deployment. The chain state has already changed
// at this point, so ledger failures are only reported.
func (uc *DeployUseCase) record(ctx context.Context, report *deploy.OutcomeReport) {
	if uc.ledger == nil {
		return
	}
	if err := uc.ledger.Record(ctx, deploy.NewDeploymentRecord(report, uc.now())); err != nil {
		uc.logger.Warn("Could not record deployment %s: %v", report.TransactionDigest, err)
	}
}
