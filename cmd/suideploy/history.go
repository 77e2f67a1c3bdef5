package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

func NewHistoryCmd() *cobra.Command {
	var (
		limit  int
		latest string
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List deployments recorded in the local ledger",
		GroupID: GroupTools,
		Long: `List executed publish and upgrade transactions, newest first.
Use --latest publish|upgrade to show only the newest record of one kind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return handleCommandError(cmd, err)
			}

			ledger, err := openLedger(cfg)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			defer ledger.Close()

			reporter := output.NewReporter(cmd.OutOrStdout(), effective.JSON.Value)
			ctx := cmd.Context()

			if latest != "" {
				kind := deploy.Kind(latest)
				if kind != deploy.KindPublish && kind != deploy.KindUpgrade {
					return handleCommandError(cmd, &deploy.ValidationError{Field: "latest", Message: "must be publish or upgrade"})
				}
				rec, err := ledger.Latest(ctx, kind)
				if err != nil {
					return handleCommandError(cmd, err)
				}
				return reporter.History([]*deploy.DeploymentRecord{rec})
			}

			recs, err := ledger.List(ctx, limit)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return reporter.History(recs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records (0 for all)")
	cmd.Flags().StringVar(&latest, "latest", "", "Show only the newest record of this kind")
	return cmd
}
