package main

import (
	"context"
	"path/filepath"

	appdeploy "github.com/altuslabsxyz/suideploy/internal/application/deploy"
	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/config"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/builder"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/executor"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/interactive"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/keyring"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/persistence"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/rpc"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/sui"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

// deployOptions are the per-command switches of publish and upgrade.
type deployOptions struct {
	dryRun    bool
	confirm   bool
	gasBudget uint64
}

// deployment holds the collaborators of one publish or upgrade run.
type deployment struct {
	cfg     *config.DeployConfig
	client  *rpc.SuiClient
	ledger  *persistence.BoltLedger
	useCase *appdeploy.DeployUseCase
}

// resolveConfig validates the effective configuration. It runs before any
// process is started or any connection is made.
func resolveConfig() (*config.DeployConfig, error) {
	return effective.Resolve()
}

func newBuilder(cfg *config.DeployConfig) *builder.MoveBuilder {
	return builder.NewMoveBuilder(cfg.SuiBinary, cfg.BuildArgs, executor.NewOSCommandExecutor(), output.DefaultLogger).
		WithTimeout(cfg.BuildTimeout)
}

// loadSigner derives the deployer identity. It runs before anything touches
// the network or the ledger.
func loadSigner(cfg *config.DeployConfig) (ports.Signer, error) {
	return keyring.FromHex(cfg.PrivateKey)
}

func openLedger(cfg *config.DeployConfig) (*persistence.BoltLedger, error) {
	return persistence.OpenLedger(filepath.Join(cfg.Home, persistence.LedgerFileName))
}

// newDeployment wires the use case against the configured fullnode.
func newDeployment(ctx context.Context, cfg *config.DeployConfig, opts deployOptions) (*deployment, error) {
	logger := output.DefaultLogger

	client, err := rpc.NewSuiClient(ctx, cfg.RPCURL, cfg.RPCTimeout)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using fullnode %s", client.Endpoint())

	ledger, err := openLedger(cfg)
	if err != nil {
		client.Close()
		return nil, err
	}

	gateOpts := []appdeploy.GateOption{appdeploy.WithSimulateOnly(opts.dryRun)}
	if opts.confirm {
		gateOpts = append(gateOpts, appdeploy.WithConfirmer(interactive.NewExecuteConfirmer(interactive.NewPrompterAdapter())))
	}

	budget := cfg.GasBudget
	if opts.gasBudget != 0 {
		budget = opts.gasBudget
	}

	gate := appdeploy.NewSubmissionGate(sui.NewEncoder(client, logger), client, logger, gateOpts...)
	uc := appdeploy.NewDeployUseCase(
		newBuilder(cfg),
		appdeploy.NewAssembler(budget),
		gate,
		ledger,
		logger,
	)

	return &deployment{cfg: cfg, client: client, ledger: ledger, useCase: uc}, nil
}

// Close releases the RPC client and the ledger lock.
func (d *deployment) Close() {
	d.client.Close()
	if err := d.ledger.Close(); err != nil {
		output.Debug("Closing ledger: %v", err)
	}
}
