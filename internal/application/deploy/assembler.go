// Package deploy implements the publish and upgrade workflows: assembling the
// programmable transaction, gating it behind a dry-run, and executing it.
package deploy

import (
	"fmt"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// Assembler turns build output into a transaction plan. It performs no I/O.
type Assembler struct {
	gasBudget uint64
}

// NewAssembler creates an Assembler. A zero budget selects
// deploy.DefaultGasBudget.
func NewAssembler(gasBudget uint64) *Assembler {
	if gasBudget == 0 {
		gasBudget = deploy.DefaultGasBudget
	}
	return &Assembler{gasBudget: gasBudget}
}

// GasBudget returns the budget applied to every plan.
func (a *Assembler) GasBudget() uint64 {
	return a.gasBudget
}

// Assemble builds the plan for spec. Every call returns a fresh plan.
func (a *Assembler) Assemble(spec deploy.Spec, build *deploy.BuildOutput, sender deploy.Address) (*deploy.TransactionPlan, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if build == nil {
		return nil, &deploy.ValidationError{Field: "build", Message: "no build output"}
	}

	modules, err := build.ModuleBytes()
	if err != nil {
		return nil, &deploy.ValidationError{Field: "modules", Message: err.Error()}
	}
	deps, err := build.DependencyIDs()
	if err != nil {
		return nil, &deploy.ValidationError{Field: "dependencies", Message: err.Error()}
	}

	var plan *deploy.TransactionPlan
	switch s := spec.(type) {
	case deploy.PublishSpec:
		plan = a.publish(modules, deps, sender)
	case deploy.UpgradeSpec:
		if len(build.Digest) == 0 {
			return nil, &deploy.ValidationError{Field: "digest", Message: "upgrade requires the package digest"}
		}
		plan = a.upgrade(s, modules, deps, build.Digest, sender)
	default:
		return nil, &deploy.ValidationError{Field: "spec", Message: fmt.Sprintf("unsupported workflow %T", spec)}
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// publish: Publish -> TransferObjects(cap, sender).
func (a *Assembler) publish(modules [][]byte, deps []deploy.ObjectID, sender deploy.Address) *deploy.TransactionPlan {
	plan := deploy.NewTransactionPlan(a.gasBudget)

	upgradeCap := plan.Add(deploy.Command{
		Kind:         deploy.CommandPublish,
		Modules:      modules,
		Dependencies: deps,
	})

	recipient := plan.Pure(deploy.PureAddress(sender))
	plan.Add(deploy.Command{
		Kind:      deploy.CommandTransferObjects,
		Objects:   []deploy.Argument{upgradeCap},
		Recipient: recipient,
	})
	return plan
}

// upgrade: authorize_upgrade -> Upgrade -> commit_upgrade -> TransferObjects.
// The ticket and receipt only exist inside the transaction, so they are
// threaded as Result references.
func (a *Assembler) upgrade(spec deploy.UpgradeSpec, modules [][]byte, deps []deploy.ObjectID, digest []byte, sender deploy.Address) *deploy.TransactionPlan {
	plan := deploy.NewTransactionPlan(a.gasBudget)

	capArg := plan.Object(spec.CapabilityID)
	policy := plan.Pure(deploy.PureU8(spec.Policy))
	digestArg := plan.Pure(deploy.PureBytes(append([]byte(nil), digest...)))

	ticket := plan.Add(deploy.Command{
		Kind:      deploy.CommandMoveCall,
		Target:    deploy.AuthorizeUpgradeTarget,
		Arguments: []deploy.Argument{capArg, policy, digestArg},
	})

	receipt := plan.Add(deploy.Command{
		Kind:         deploy.CommandUpgrade,
		Modules:      modules,
		Dependencies: deps,
		Package:      spec.PackageID,
		Ticket:       ticket,
	})

	plan.Add(deploy.Command{
		Kind:      deploy.CommandMoveCall,
		Target:    deploy.CommitUpgradeTarget,
		Arguments: []deploy.Argument{capArg, receipt},
	})

	recipient := plan.Pure(deploy.PureAddress(sender))
	plan.Add(deploy.Command{
		Kind:      deploy.CommandTransferObjects,
		Objects:   []deploy.Argument{plan.Object(spec.CapabilityID)},
		Recipient: recipient,
	})
	return plan
}
