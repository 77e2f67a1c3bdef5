package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// DeployConfig is the resolved configuration handed to the deploy wiring.
type DeployConfig struct {
	Home          string
	Network       string
	RPCURL        string
	RPCTimeout    time.Duration
	SuiBinary     string
	BuildArgs     []string
	BuildTimeout  time.Duration
	GasBudget     uint64
	UpgradePolicy deploy.UpgradePolicy

	// PrivateKey is the hex Ed25519 secret from PRIVATE_KEY. It is checked
	// by the key loader, not by Validate, since build and history run
	// without it.
	PrivateKey string
	// UpgradeCap and PackageID are required by upgrade only.
	UpgradeCap string
	PackageID  string
}

// UpgradeSpec builds the validated upgrade workflow for the package at path.
func (c *DeployConfig) UpgradeSpec(path string) (deploy.UpgradeSpec, error) {
	return deploy.NewUpgradeSpec(path, c.UpgradeCap, c.PackageID, c.UpgradePolicy)
}

// Validate checks every value before any external call is made.
func (c *DeployConfig) Validate() error {
	if c.Home == "" {
		return &deploy.ValidationError{Field: "home", Message: "must not be empty"}
	}
	if c.RPCURL == "" {
		return &deploy.ValidationError{
			Field:   "network",
			Message: fmt.Sprintf("unknown network %q and no rpc_url set (known: %v)", c.Network, NetworkNames()),
		}
	}
	u, err := url.Parse(c.RPCURL)
	if err != nil || u.Host == "" {
		return &deploy.ValidationError{Field: "rpc_url", Message: fmt.Sprintf("%q is not a valid URL", c.RPCURL)}
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return &deploy.ValidationError{Field: "rpc_url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if c.SuiBinary == "" {
		return &deploy.ValidationError{Field: "sui_binary", Message: "must not be empty"}
	}
	if c.GasBudget == 0 {
		return &deploy.ValidationError{Field: "gas_budget", Message: "must be greater than zero"}
	}
	if c.RPCTimeout <= 0 {
		return &deploy.ValidationError{Field: "rpc_timeout", Message: "must be positive"}
	}
	if c.BuildTimeout <= 0 {
		return &deploy.ValidationError{Field: "build_timeout", Message: "must be positive"}
	}
	return nil
}
