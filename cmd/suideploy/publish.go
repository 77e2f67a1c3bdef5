package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

func NewPublishCmd() *cobra.Command {
	var opts deployOptions

	cmd := &cobra.Command{
		Use:     "publish [package-path]",
		Short:   "Publish a Move package for the first time",
		GroupID: GroupDeploy,
		Long: `Build the package, publish it and transfer the new UpgradeCap to the
deployer. The transaction is executed only if its dry-run succeeds.

Requires PRIVATE_KEY. The package path defaults to ../contract.` + gasBudgetHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, deploy.PublishSpec{PackagePath: packagePath(args)}, opts)
		},
	}

	addDeployFlags(cmd, &opts)
	return cmd
}
