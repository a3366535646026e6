package cosmos_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
)

func TestChain_GetBalances(t *testing.T) {
	tc := newReadyTestChain(t)
	tc.bank.coins = sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_500_000)),
		sdk.NewCoin("ibc/0000000000000000000000000000000000000000000000000000000000000000", math.NewInt(7)),
	)

	w, err := vault.WalletFromPrivateKey(testPrivateKeyHex, tc.Bech32Prefix())
	require.NoError(t, err)

	balances, err := tc.GetBalances(context.Background(), w)
	require.NoError(t, err)
	require.Equal(t, map[string]assets.TokenValue{
		"ATOM": {Value: math.NewInt(1_500_000), Decimals: 6},
	}, balances)
}

func TestChain_Balances(t *testing.T) {
	tc := newReadyTestChain(t)
	tc.bank.coins = sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(1_500_000)))
	ctx := context.Background()

	balances, err := tc.Balances(ctx, "cosmos1xyz", []string{"atom", "OSMO"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"ATOM": "1.5", "OSMO": "0.0"}, balances)

	_, err = tc.Balances(ctx, "cosmos1xyz", []string{"ATOM", "FOO"})
	require.ErrorIs(t, err, assets.ErrTokenNotSupported)
	require.Equal(t, int32(1), tc.bank.calls.Load())
}

func TestChain_BalancesPropagatesQueryErrors(t *testing.T) {
	tc := newReadyTestChain(t)
	queryErr := errors.New("rpc error: code = Unavailable")
	tc.bank.err = queryErr

	_, err := tc.Balances(context.Background(), "cosmos1xyz", []string{"ATOM"})
	require.ErrorIs(t, err, queryErr)
}
