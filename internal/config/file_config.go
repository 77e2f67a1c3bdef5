package config

// FileConfig represents the raw suideploy.toml contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	Home    *string `toml:"home"`
	NoColor *bool   `toml:"no_color"`
	Verbose *bool   `toml:"verbose"`
	JSON    *bool   `toml:"json"`

	// Chain
	Network    *string `toml:"network"` // mainnet, testnet, devnet or localnet
	RPCURL     *string `toml:"rpc_url"` // overrides the network's endpoint
	RPCTimeout *string `toml:"rpc_timeout"`

	// Build
	SuiBinary    *string   `toml:"sui_binary"`
	BuildArgs    *[]string `toml:"build_args"` // appended after -p <path>
	BuildTimeout *string   `toml:"build_timeout"`

	// Transaction
	GasBudget     *uint64 `toml:"gas_budget"`
	UpgradePolicy *string `toml:"upgrade_policy"`
}

// knownKeys lists every top-level key FileConfig understands.
var knownKeys = map[string]bool{
	"home":           true,
	"no_color":       true,
	"verbose":        true,
	"json":           true,
	"network":        true,
	"rpc_url":        true,
	"rpc_timeout":    true,
	"sui_binary":     true,
	"build_args":     true,
	"build_timeout":  true,
	"gas_budget":     true,
	"upgrade_policy": true,
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.Home == nil &&
		f.NoColor == nil &&
		f.Verbose == nil &&
		f.JSON == nil &&
		f.Network == nil &&
		f.RPCURL == nil &&
		f.RPCTimeout == nil &&
		f.SuiBinary == nil &&
		f.BuildArgs == nil &&
		f.BuildTimeout == nil &&
		f.GasBudget == nil &&
		f.UpgradePolicy == nil
}

// mergeFileConfig merges src into dst. Non-nil values in src overwrite dst.
func mergeFileConfig(dst, src *FileConfig) {
	if src.Home != nil {
		dst.Home = src.Home
	}
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.JSON != nil {
		dst.JSON = src.JSON
	}
	if src.Network != nil {
		dst.Network = src.Network
	}
	if src.RPCURL != nil {
		dst.RPCURL = src.RPCURL
	}
	if src.RPCTimeout != nil {
		dst.RPCTimeout = src.RPCTimeout
	}
	if src.SuiBinary != nil {
		dst.SuiBinary = src.SuiBinary
	}
	if src.BuildArgs != nil {
		dst.BuildArgs = src.BuildArgs
	}
	if src.BuildTimeout != nil {
		dst.BuildTimeout = src.BuildTimeout
	}
	if src.GasBudget != nil {
		dst.GasBudget = src.GasBudget
	}
	if src.UpgradePolicy != nil {
		dst.UpgradePolicy = src.UpgradePolicy
	}
}
