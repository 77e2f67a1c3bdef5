package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "address",
		Short:   "Print the deployer address derived from PRIVATE_KEY",
		GroupID: GroupTools,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return handleCommandError(cmd, err)
			}
			signer, err := loadSigner(cfg)
			if err != nil {
				return handleCommandError(cmd, err)
			}

			w := cmd.OutOrStdout()
			if effective.JSON.Value {
				return json.NewEncoder(w).Encode(map[string]string{"address": signer.Address().String()})
			}
			fmt.Fprintln(w, signer.Address())
			return nil
		},
	}
}
