package config

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// Defaults for values not set anywhere.
const (
	DefaultSuiBinary    = "sui"
	DefaultBuildTimeout = 10 * time.Minute
	DefaultRPCTimeout   = 60 * time.Second
)

// EffectiveConfig represents the final merged configuration after applying
// the priority chain default < config file < environment < flag.
type EffectiveConfig struct {
	// Global settings
	Home    StringValue
	NoColor BoolValue
	Verbose BoolValue
	JSON    BoolValue

	// Chain
	Network    StringValue
	RPCURL     StringValue
	RPCTimeout DurationValue

	// Build
	SuiBinary    StringValue
	BuildArgs    StringsValue
	BuildTimeout DurationValue

	// Transaction
	GasBudget     Uint64Value
	UpgradePolicy StringValue

	// Deployer secrets and upgrade target, environment only
	PrivateKey StringValue
	UpgradeCap StringValue
	PackageID  StringValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig(defaultHomeDir string) *EffectiveConfig {
	return &EffectiveConfig{
		Home:          Default(defaultHomeDir),
		NoColor:       Default(false),
		Verbose:       Default(false),
		JSON:          Default(false),
		Network:       Default(DefaultNetwork),
		RPCURL:        Default(""),
		RPCTimeout:    Default(DefaultRPCTimeout),
		SuiBinary:     Default(DefaultSuiBinary),
		BuildArgs:     Default([]string(nil)),
		BuildTimeout:  Default(DefaultBuildTimeout),
		GasBudget:     Default(deploy.DefaultGasBudget),
		UpgradePolicy: Default(deploy.PolicyCompatible.String()),
		PrivateKey:    Default(""),
		UpgradeCap:    Default(""),
		PackageID:     Default(""),
	}
}

// ApplyFile overlays values set in the config file.
func (c *EffectiveConfig) ApplyFile(f *FileConfig, path string) error {
	if f == nil {
		return nil
	}
	c.ConfigFilePath = path

	c.Home.set(f.Home, SourceConfigFile)
	c.NoColor.set(f.NoColor, SourceConfigFile)
	c.Verbose.set(f.Verbose, SourceConfigFile)
	c.JSON.set(f.JSON, SourceConfigFile)
	c.Network.set(f.Network, SourceConfigFile)
	c.RPCURL.set(f.RPCURL, SourceConfigFile)
	c.SuiBinary.set(f.SuiBinary, SourceConfigFile)
	c.UpgradePolicy.set(f.UpgradePolicy, SourceConfigFile)
	c.BuildArgs.set(f.BuildArgs, SourceConfigFile)
	c.GasBudget.set(f.GasBudget, SourceConfigFile)

	if err := setDuration(&c.RPCTimeout, "rpc_timeout", f.RPCTimeout); err != nil {
		return err
	}
	return setDuration(&c.BuildTimeout, "build_timeout", f.BuildTimeout)
}

// ApplyEnv overlays values from the environment. lookup is os.LookupEnv in
// production. The key and upgrade ids are only ever read here, never from a
// config file.
func (c *EffectiveConfig) ApplyEnv(lookup func(string) (string, bool)) {
	for name, dst := range map[string]*StringValue{
		EnvPrivateKey: &c.PrivateKey,
		EnvUpgradeCap: &c.UpgradeCap,
		EnvPackageID:  &c.PackageID,
	} {
		if v, ok := lookup(name); ok {
			dst.set(&v, SourceEnvironment)
		}
	}
	if v, ok := lookup(EnvRPCURL); ok && v != "" {
		c.RPCURL.set(&v, SourceEnvironment)
	}
	// https://no-color.org: any non-empty value disables color.
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		on := true
		c.NoColor.set(&on, SourceEnvironment)
	}
}

func setDuration(dst *DurationValue, key string, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return &deploy.ValidationError{Field: key, Message: fmt.Sprintf("%q is not a duration", *v)}
	}
	dst.set(&d, SourceConfigFile)
	return nil
}

// EffectiveRPCURL returns the rpc_url override, or the endpoint of the
// configured network.
func (c *EffectiveConfig) EffectiveRPCURL() string {
	if c.RPCURL.Value != "" {
		return c.RPCURL.Value
	}
	return Networks[c.Network.Value]
}

// Resolve converts the effective values into a validated DeployConfig.
func (c *EffectiveConfig) Resolve() (*DeployConfig, error) {
	policy, err := deploy.ParseUpgradePolicy(c.UpgradePolicy.Value)
	if err != nil {
		return nil, err
	}

	dc := &DeployConfig{
		Home:          c.Home.Value,
		Network:       c.Network.Value,
		RPCURL:        c.EffectiveRPCURL(),
		RPCTimeout:    c.RPCTimeout.Value,
		SuiBinary:     c.SuiBinary.Value,
		BuildArgs:     append([]string(nil), c.BuildArgs.Value...),
		BuildTimeout:  c.BuildTimeout.Value,
		GasBudget:     c.GasBudget.Value,
		UpgradePolicy: policy,
		PrivateKey:    c.PrivateKey.Value,
		UpgradeCap:    c.UpgradeCap.Value,
		PackageID:     c.PackageID.Value,
	}
	if err := dc.Validate(); err != nil {
		return nil, err
	}
	return dc, nil
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "home\t%s\t%s\n", c.Home.Value, c.Home.Source)
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "json\t%t\t%s\n", c.JSON.Value, c.JSON.Source)
	fmt.Fprintf(tw, "network\t%s\t%s\n", c.Network.Value, c.Network.Source)
	fmt.Fprintf(tw, "rpc_url\t%s\t%s\n", c.EffectiveRPCURL(), c.RPCURL.Source)
	fmt.Fprintf(tw, "rpc_timeout\t%s\t%s\n", c.RPCTimeout.Value, c.RPCTimeout.Source)
	fmt.Fprintf(tw, "sui_binary\t%s\t%s\n", c.SuiBinary.Value, c.SuiBinary.Source)
	fmt.Fprintf(tw, "build_args\t%s\t%s\n", strings.Join(c.BuildArgs.Value, " "), c.BuildArgs.Source)
	fmt.Fprintf(tw, "build_timeout\t%s\t%s\n", c.BuildTimeout.Value, c.BuildTimeout.Source)
	fmt.Fprintf(tw, "gas_budget\t%d\t%s\n", c.GasBudget.Value, c.GasBudget.Source)
	fmt.Fprintf(tw, "upgrade_policy\t%s\t%s\n", c.UpgradePolicy.Value, c.UpgradePolicy.Source)
	fmt.Fprintf(tw, "private_key\t%s\t%s\n", redact(c.PrivateKey.Value), c.PrivateKey.Source)
	fmt.Fprintf(tw, "upgrade_cap\t%s\t%s\n", c.UpgradeCap.Value, c.UpgradeCap.Source)
	fmt.Fprintf(tw, "package_id\t%s\t%s\n", c.PackageID.Value, c.PackageID.Source)
	if c.ConfigFilePath != "" {
		fmt.Fprintf(tw, "config_file\t%s\t\n", c.ConfigFilePath)
	}
	tw.Flush()
}

// redact hides a secret while still showing whether it is set.
func redact(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "(set)"
}
