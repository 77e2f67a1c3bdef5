package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/output"
)

func NewBuildCmd() *cobra.Command {
	var withDigest bool

	cmd := &cobra.Command{
		Use:     "build [package-path]",
		Short:   "Compile a Move package and show its bytecode dump",
		GroupID: GroupTools,
		Long: `Run sui move build --dump-bytecode-as-base64 and summarize the modules,
dependencies and digest. No key or network access is needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return handleCommandError(cmd, err)
			}

			path := packagePath(args)
			output.Info("Building package %s...", path)
			out, err := newBuilder(cfg).Build(cmd.Context(), path, withDigest)
			if err != nil {
				return handleCommandError(cmd, err)
			}

			return output.NewReporter(cmd.OutOrStdout(), effective.JSON.Value).Build(path, out)
		},
	}

	cmd.Flags().BoolVar(&withDigest, "with-digest", false,
		"Fail unless the compiler emits the package digest needed for upgrades")
	return cmd
}
