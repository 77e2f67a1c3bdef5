package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/config"
)

func NewUpgradeCmd() *cobra.Command {
	var (
		opts   deployOptions
		policy string
	)

	cmd := &cobra.Command{
		Use:     "upgrade [package-path]",
		Short:   "Upgrade a published Move package",
		GroupID: GroupDeploy,
		Long: `Build the package and run authorize_upgrade, Upgrade and commit_upgrade
in one transaction. The transaction is executed only if its dry-run succeeds.

Requires PRIVATE_KEY, UPGRADE_CAP (the UpgradeCap object id) and PACKAGE_ID
(the package being upgraded). The package path defaults to ../contract.` + gasBudgetHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("policy") {
				effective.UpgradePolicy = config.StringValue{Value: policy, Source: config.SourceFlag}
			}
			cfg, err := resolveConfig()
			if err != nil {
				return handleCommandError(cmd, err)
			}

			spec, err := cfg.UpgradeSpec(packagePath(args))
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return runDeploy(cmd, spec, opts)
		},
	}

	addDeployFlags(cmd, &opts)
	cmd.Flags().StringVar(&policy, "policy", "",
		"Upgrade policy: compatible, additive or dep_only (default from config, compatible)")
	return cmd
}
