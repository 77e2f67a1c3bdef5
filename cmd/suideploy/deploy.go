package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/application/dto"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

// DefaultPackagePath is the Move package compiled when no path is given.
const DefaultPackagePath = "../contract"

// gasBudgetHelp is appended to the publish and upgrade help.
const gasBudgetHelp = `

Every transaction carries the fixed gas budget of 1000000000 MIST
(1 SUI). gas_budget in the config file or --gas-budget replace it; this
is an advanced override and is not needed for normal deployments.`

func packagePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultPackagePath
}

func addDeployFlags(cmd *cobra.Command, opts *deployOptions) {
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Simulate only; never execute")
	cmd.Flags().BoolVar(&opts.confirm, "confirm", false,
		"Ask for confirmation after a successful simulation")
	cmd.Flags().Uint64Var(&opts.gasBudget, "gas-budget", 0,
		"Advanced: replace the fixed 1000000000 MIST gas budget for this run")
}

// runDeploy executes spec and renders the outcome. A simulation that predicts
// failure is reported and exits zero.
func runDeploy(cmd *cobra.Command, spec deploy.Spec, opts deployOptions) error {
	cfg, err := resolveConfig()
	if err != nil {
		return handleCommandError(cmd, err)
	}
	if err := spec.Validate(); err != nil {
		return handleCommandError(cmd, err)
	}
	signer, err := loadSigner(cfg)
	if err != nil {
		return handleCommandError(cmd, err)
	}

	ctx := cmd.Context()
	d, err := newDeployment(ctx, cfg, opts)
	if err != nil {
		return handleCommandError(cmd, err)
	}
	defer d.Close()

	result, err := d.useCase.Execute(ctx, dto.DeployInput{
		Spec:    spec,
		Signer:  signer,
		Network: cfg.Network,
	})
	if result != nil && result.Report != nil {
		reporter := output.NewReporter(cmd.OutOrStdout(), effective.JSON.Value)
		if rerr := reporter.Report(result.Report); rerr != nil {
			output.Warn("Could not render report: %v", rerr)
		}
	}
	if err != nil {
		return handleCommandError(cmd, err)
	}
	return nil
}
