package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pokt-network/chaingate/cmd/flags"
	"github.com/pokt-network/chaingate/cmd/logger"
	"github.com/pokt-network/chaingate/pkg/gateway"
)

// envPrefix is the viper env prefix: CHAINGATE_LISTEN_ADDRESS,
// CHAINGATE_CACHE_BACKEND and so on.
const envPrefix = "CHAINGATE"

var (
	// gatewayCfg is loaded by the root command's PersistentPreRunE.
	gatewayCfg *gateway.Config

	configPath     string
	passphraseFlag string
	closeLogOutput = func() error { return nil }
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chaingated",
		Short: "Cosmos chain gateway for the trading engine",
		Long: `Cosmos chain gateway for the trading engine.

chaingated connects to the RPC nodes of the configured Cosmos chains
(Cosmos Hub, Juno, Chihuahua, Terra 2) and serves balances, transaction
status and wallet storage over a JSON HTTP API.

Configuration is read, in order of precedence, from flags, CHAINGATE_
prefixed environment variables and the config file.`,
		SilenceUsage:       true,
		PersistentPreRunE:  preRunRoot,
		PersistentPostRunE: func(*cobra.Command, []string) error { return closeLogOutput() },
	}

	rootCmd.PersistentFlags().StringVar(&configPath, flags.FlagConfig, "", flags.FlagConfigUsage)
	rootCmd.PersistentFlags().StringVarP(&passphraseFlag, flags.FlagPassphrase, flags.FlagPassphraseShort, "", flags.FlagPassphraseUsage)

	if err := flags.BindFlags(rootCmd, viper.GetViper(),
		flags.FlagDescriptor{FlagName: flags.FlagLogLevel, ConfigKey: "log.level", Description: flags.FlagLogLevelUsage},
		flags.FlagDescriptor{FlagName: flags.FlagLogOutput, ConfigKey: "log.output", Description: flags.FlagLogOutputUsage},
		flags.FlagDescriptor{FlagName: flags.FlagLogBackend, ConfigKey: "log.backend", Description: flags.FlagLogBackendUsage},
	); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(WalletCmd())
	rootCmd.AddCommand(QueryCmd())

	return rootCmd
}

func preRunRoot(cmd *cobra.Command, _ []string) error {
	if err := setupViper(viper.GetViper()); err != nil {
		return err
	}

	cfg, err := gateway.LoadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	gatewayCfg = cfg

	closeFn, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	closeLogOutput = closeFn
	return nil
}

// setupViper reads config values from the following sources in order of
// precedence (highest to lowest):
// 1. Bound flags
// 2. Environment variables
// 3. The config file
// 4. Defaults
func setupViper(v *viper.Viper) error {
	gateway.SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("chaingate")
		v.SetConfigType("yaml")
		v.AddConfigPath("./conf")
		v.AddConfigPath("$HOME/.chaingate")
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	switch {
	// Configuration MAY be done through environment variables alone.
	case errors.As(err, &viper.ConfigFileNotFoundError{}):
		return nil
	default:
		return err
	}
}
