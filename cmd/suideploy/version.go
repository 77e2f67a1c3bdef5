package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/version"
)

func NewVersionCmd() *cobra.Command {
	cmd := version.NewCmd("suideploy", func(ctx context.Context) (string, error) {
		cfg, err := resolveConfig()
		if err != nil {
			return "", err
		}
		return newBuilder(cfg).CLIVersion(ctx)
	})
	cmd.GroupID = GroupTools
	return cmd
}
