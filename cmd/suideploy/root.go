package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/suideploy/internal/config"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

// Global flags
var (
	homeDir    string
	configPath string
	network    string
	rpcURL     string
	jsonMode   bool
	noColor    bool
	verbose    bool

	// effective is the merged configuration, set by PersistentPreRunE.
	effective *config.EffectiveConfig
)

// Command group IDs for organized help output.
const (
	GroupDeploy = "deploy"
	GroupTools  = "tools"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suideploy",
		Short: "Publish and upgrade Sui Move packages with a dry-run gate",
		Long: `suideploy builds a Sui Move package, assembles a publish or upgrade
transaction, simulates it against a fullnode and executes the identical
transaction only when the simulation succeeds.

The deployer key is read from PRIVATE_KEY (hex). Upgrades also read
UPGRADE_CAP and PACKAGE_ID. A .env file in the working directory is loaded
first; variables already set in the environment take precedence.

Examples:
  # Publish ../contract to mainnet
  suideploy publish

  # Simulate an upgrade on testnet without executing it
  suideploy upgrade ./move/counter --network testnet --dry-run

  # Show the deployer address
  suideploy address`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
				return handleCommandError(cmd, err)
			}
			if err := loadEffectiveConfig(cmd); err != nil {
				return handleCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&homeDir, "home", "H", "",
		"Base directory for suideploy data (default $SUIDEPLOY_HOME or ~/.suideploy)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a config file (overrides ./suideploy.toml and <home>/config.toml)")
	cmd.PersistentFlags().StringVarP(&network, "network", "n", config.DefaultNetwork,
		"Sui network: mainnet, testnet, devnet or localnet")
	cmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "",
		"Fullnode JSON-RPC URL (overrides --network)")
	cmd.PersistentFlags().BoolVar(&jsonMode, "json", false,
		"Output in JSON format")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")

	cmd.AddGroup(&cobra.Group{ID: GroupDeploy, Title: "Deployment Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupTools, Title: "Tools:"})

	cmd.AddCommand(
		NewPublishCmd(),
		NewUpgradeCmd(),
		NewBuildCmd(),
		NewAddressCmd(),
		NewHistoryCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// loadEffectiveConfig merges default < config file < environment < flag and
// applies the output settings to the default logger.
func loadEffectiveConfig(cmd *cobra.Command) error {
	home := homeDir
	if !cmd.Flags().Changed("home") {
		home = config.DefaultHomeDir()
	}

	loader := config.NewConfigLoader(home, configPath, output.DefaultLogger)
	fileCfg, fileCfgPath, err := loader.LoadFileConfig()
	if err != nil {
		return err
	}

	eff := config.NewEffectiveConfig(home)
	if err := eff.ApplyFile(fileCfg, fileCfgPath); err != nil {
		return err
	}
	// SUIDEPLOY_HOME beats the file, --home beats both.
	if env := os.Getenv(config.EnvHome); env != "" {
		eff.Home = config.StringValue{Value: env, Source: config.SourceEnvironment}
	}
	eff.ApplyEnv(os.LookupEnv)

	config.ApplyStringFlag(cmd, "home", &eff.Home)
	config.ApplyStringFlag(cmd, "network", &eff.Network)
	config.ApplyStringFlag(cmd, "rpc-url", &eff.RPCURL)
	config.ApplyBoolFlag(cmd, "json", &eff.JSON)
	config.ApplyBoolFlag(cmd, "no-color", &eff.NoColor)
	config.ApplyBoolFlag(cmd, "verbose", &eff.Verbose)

	// A --network flag selects that network's endpoint unless --rpc-url is
	// also given.
	if cmd.Flags().Changed("network") && !cmd.Flags().Changed("rpc-url") {
		eff.RPCURL = config.Default("")
	}

	output.DefaultLogger.SetNoColor(eff.NoColor.Value)
	output.DefaultLogger.SetVerbose(eff.Verbose.Value)
	output.DefaultLogger.SetJSONMode(eff.JSON.Value)

	if fileCfgPath != "" {
		output.Debug("Using config file: %s", fileCfgPath)
	}

	effective = eff
	return nil
}
