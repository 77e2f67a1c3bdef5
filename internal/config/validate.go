package config

import (
	"fmt"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// ValidateFileConfig validates FileConfig values when the file is loaded, so
// mistakes are reported against the file rather than the merged result.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Network != nil && cfg.RPCURL == nil {
		if _, ok := Networks[*cfg.Network]; !ok {
			return fmt.Errorf("invalid network in config file: %s (must be one of %v, or set rpc_url)", *cfg.Network, NetworkNames())
		}
	}

	if cfg.UpgradePolicy != nil {
		if _, err := deploy.ParseUpgradePolicy(*cfg.UpgradePolicy); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	if cfg.GasBudget != nil && *cfg.GasBudget == 0 {
		return fmt.Errorf("invalid gas_budget in config file: must be greater than zero")
	}

	return nil
}
