package cmd

import (
	"context"

	"github.com/pokt-network/chaingate/cmd/logger"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/gateway"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

// passphraseProvider prefers the --passphrase flag, then
// CHAINGATE_PASSPHRASE. Interactive commands may also prompt.
func passphraseProvider(interactive bool) passphrase.Provider {
	providers := passphrase.Chain{
		passphrase.Static(passphraseFlag),
		passphrase.NewEnvProvider(passphrase.EnvPrefix),
	}
	if interactive {
		providers = append(providers, passphrase.NewTerminalProvider("Wallet passphrase: "))
	}
	return providers
}

// newRegistry wires the shared dependencies of every chain client. The
// returned function closes every chain and the cache backend.
func newRegistry(ctx context.Context, interactive bool) (*cosmos.Registry, *wallet.FileStore, func(), error) {
	cacheStore, closeCache, err := gateway.NewCacheStore(ctx, logger.Logger, gatewayCfg.Cache)
	if err != nil {
		return nil, nil, nil, err
	}

	wallets := wallet.NewFileStore(logger.Logger, gatewayCfg.Wallets.Dir)
	deps := gateway.Deps{
		Cache:      cacheStore,
		Crypto:     vault.NewVault(),
		Passphrase: passphraseProvider(interactive),
		Wallets:    wallets,
	}
	registry := cosmos.NewRegistry(logger.Logger, gateway.NewChainFactory(logger.Logger, gatewayCfg, deps))

	closeAll := func() {
		if err := registry.CloseAll(); err != nil {
			logger.Logger.Warn().Err(err).Msg("unable to close every chain client")
		}
		if err := closeCache(); err != nil {
			logger.Logger.Warn().Err(err).Msg("unable to close cache")
		}
	}
	return registry, wallets, closeAll, nil
}

// readyChain returns the initialized client of chain and network.
func readyChain(ctx context.Context, registry *cosmos.Registry, chain, network string) (*cosmos.Chain, error) {
	c, err := registry.Get(chain, network)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
