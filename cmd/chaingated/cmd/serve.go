package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pokt-network/chaingate/cmd/flags"
	"github.com/pokt-network/chaingate/cmd/logger"
	"github.com/pokt-network/chaingate/cmd/signals"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/gateway"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/retry"
)

func ServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway HTTP API.",
		Long: `Start the gateway HTTP API.

Every configured chain network is initialized in the background at startup,
with exponential backoff. A chain which is still not ready is initialized
again on its first request.`,
		Example: `chaingated serve --config ./conf/chaingate.yaml

# Using environment variables:
CHAINGATE_LISTEN_ADDRESS=0.0.0.0:8080 \
CHAINGATE_CACHE_BACKEND=redis \
CHAINGATE_CACHE_REDIS_ADDRESS=redis:6379 \
CHAINGATE_PASSPHRASE=... \
chaingated serve`,
		RunE: runServe,
	}

	serveCmd.Flags().String(flags.FlagListenAddress, "", flags.FlagListenAddressUsage)
	if err := viper.BindPFlag("listen_address", serveCmd.Flags().Lookup(flags.FlagListenAddress)); err != nil {
		panic(err)
	}
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdContext, cmdCancel := context.WithCancel(cmd.Context())
	defer cmdCancel()

	signals.GoOnExitSignal(logger.Logger, func() {
		logger.Logger.Info().Msg("Shutting down...")
		cmdCancel()
	})

	registry, wallets, closeAll, err := newRegistry(cmdContext, false)
	if err != nil {
		return err
	}
	defer closeAll()

	if gatewayCfg.Metrics.Enabled {
		if err := gateway.ServeMetrics(cmdContext, logger.Logger, gatewayCfg.Metrics.Addr); err != nil {
			return err
		}
	}

	warmUpChains(logger.Logger.WithContext(cmdContext), registry)

	srv := gateway.NewServer(logger.Logger, registry, wallets,
		gateway.WithListenAddress(gatewayCfg.ListenAddress),
	)
	return srv.Serve(cmdContext)
}

var warmUpStrategy = retry.WithExponentialBackoffFn(4, time.Second, 15*time.Second)

// warmUpChains initializes every configured chain network concurrently.
func warmUpChains(ctx context.Context, registry *cosmos.Registry) {
	for _, key := range gatewayCfg.ChainNetworks() {
		chain, network, _ := strings.Cut(key, "_")
		go func() {
			_, err := retry.Call(ctx, "init_"+key, func(ctx context.Context) (*cosmos.Chain, error) {
				return readyChain(ctx, registry, chain, network)
			}, warmUpStrategy)
			if err != nil && ctx.Err() == nil {
				logger.Logger.Warn().
					Err(err).
					Str(polylog.FieldChain, chain).
					Str(polylog.FieldNetwork, network).
					Msg("chain client unavailable after startup retries")
			}
		}()
	}
}
