package cosmos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/client/cosmos"
)

func newTestRegistry(t *testing.T) (*cosmos.Registry, *int) {
	t.Helper()
	built := 0
	registry := cosmos.NewRegistry(newTestLogger(), func(chain, network string) (*cosmos.Chain, error) {
		if network != cosmos.NetworkMainnet {
			return nil, cosmos.ErrUnsupportedChain.Wrapf("%s/%s is not configured", chain, network)
		}
		built++
		cfg := newTestConfig(t)
		cfg.Chain = chain
		return newTestChain(t, cfg).Chain, nil
	})
	return registry, &built
}

func TestRegistry_GetIsIdempotent(t *testing.T) {
	registry, built := newTestRegistry(t)

	first, err := registry.Get("juno", "mainnet")
	require.NoError(t, err)
	second, err := registry.Get("JUNO", "MainNet")
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, *built)
	require.Equal(t, "juno", first.Bech32Prefix())
	require.Equal(t, []string{"juno_mainnet"}, registry.Keys())
}

func TestRegistry_UnsupportedChain(t *testing.T) {
	registry, built := newTestRegistry(t)

	_, err := registry.Get("osmosis", "mainnet")
	require.ErrorIs(t, err, cosmos.ErrUnsupportedChain)

	_, err = registry.Get("juno", "devnet")
	require.ErrorIs(t, err, cosmos.ErrUnsupportedChain)

	_, err = registry.Get("juno", "testnet")
	require.ErrorIs(t, err, cosmos.ErrUnsupportedChain)
	require.Zero(t, *built)
}

func TestRegistry_CloseRemovesChain(t *testing.T) {
	registry, built := newTestRegistry(t)

	first, err := registry.Get("terra2", "mainnet")
	require.NoError(t, err)
	require.NoError(t, first.Close())
	require.Empty(t, registry.Keys())

	second, err := registry.Get("terra2", "mainnet")
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.Equal(t, 2, *built)
}

func TestRegistry_CloseAll(t *testing.T) {
	registry, _ := newTestRegistry(t)

	for _, chain := range cosmos.SupportedChains() {
		_, err := registry.Get(chain, "mainnet")
		require.NoError(t, err)
	}
	require.Len(t, registry.Keys(), 4)

	require.NoError(t, registry.CloseAll())
	require.Empty(t, registry.Keys())
}
