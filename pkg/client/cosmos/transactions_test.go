package cosmos_test

import (
	"context"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/txcache"
)

const testTxHash = "9F86D081884C7D659A2FEAA0C55AD015A3BF4F1B2B0B822CD15D6C15B0F00A08"

func newRawTx(t *testing.T) []byte {
	t.Helper()

	body := txtypes.TxBody{
		Messages: []*codectypes.Any{{TypeUrl: "/cosmos.bank.v1beta1.MsgSend"}},
		Memo:     "rebalance",
	}
	bodyBz, err := body.Marshal()
	require.NoError(t, err)

	authInfo := txtypes.AuthInfo{Fee: &txtypes.Fee{
		Amount:   sdk.NewCoins(sdk.NewInt64Coin("uatom", 5_000)),
		GasLimit: 200_000,
	}}
	authInfoBz, err := authInfo.Marshal()
	require.NoError(t, err)

	raw := txtypes.TxRaw{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		Signatures:    [][]byte{{0x01, 0x02}},
	}
	rawBz, err := raw.Marshal()
	require.NoError(t, err)
	return rawBz
}

func expectTxSearch(tc *testChain, code uint32, tx []byte) *mock.Call {
	return tc.node.On("TxSearch",
		mock.Anything, txcache.TxHashQuery(testTxHash), false, (*int)(nil), (*int)(nil), "",
	).Return(&coretypes.ResultTxSearch{
		Txs: []*coretypes.ResultTx{{
			Height: 90,
			TxResult: abci.ExecTxResult{
				Code:      code,
				GasUsed:   81_000,
				GasWanted: 200_000,
			},
			Tx: tx,
		}},
		TotalCount: 1,
	}, nil)
}

func TestChain_GetTransactionServesCachedEntryWithoutRPC(t *testing.T) {
	tc := newReadyTestChain(t)
	ctx := context.Background()

	_, err := tc.RetrieveTransaction(ctx, testTxHash)
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, tc.CacheTransaction(ctx, &txcache.TxRecord{Hash: testTxHash, Height: 42}))

	record, err := tc.GetTransaction(ctx, testTxHash)
	require.NoError(t, err)
	require.Equal(t, int64(42), record.Height)

	status, err := tc.GetTransactionStatus(ctx, testTxHash)
	require.NoError(t, err)
	require.Equal(t, txcache.TxStatusSuccess, status)

	tc.node.AssertNotCalled(t, "TxSearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChain_GetTransactionNotFound(t *testing.T) {
	tc := newReadyTestChain(t)
	tc.node.On("TxSearch", mock.Anything, mock.Anything, false, (*int)(nil), (*int)(nil), "").
		Return(&coretypes.ResultTxSearch{}, nil)

	_, err := tc.GetTransaction(context.Background(), testTxHash)
	require.ErrorIs(t, err, txcache.ErrTransactionNotFound)
}

func TestChain_PollRecordsSuccessfulTransactions(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.TxStoragePath = t.TempDir()
	tc := newTestChain(t, cfg)
	require.NoError(t, tc.Init(context.Background()))

	expectTxSearch(tc, 0, newRawTx(t)).Once()

	result, err := tc.Poll(context.Background(), testTxHash)
	require.NoError(t, err)
	require.Equal(t, cosmos.NetworkMainnet, result.Network)
	require.Equal(t, txcache.TxStatusSuccess, result.Status)
	require.Equal(t, int64(100), result.CurrentBlock)
	require.Equal(t, int64(90), result.TxBlock)
	require.Equal(t, int64(81_000), result.GasUsed)
	require.Equal(t, int64(200_000), result.GasWanted)
	require.Equal(t, &cosmos.TxData{
		Memo:       "rebalance",
		Messages:   []string{"/cosmos.bank.v1beta1.MsgSend"},
		Fee:        "5000uatom",
		GasLimit:   200_000,
		Signatures: 1,
	}, result.TxData)

	history, err := tc.TxHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, testTxHash, history[0].TxHash)
	require.Equal(t, testChainID, history[0].ChainID)
}

func TestChain_PollFailedTransaction(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.TxStoragePath = t.TempDir()
	tc := newTestChain(t, cfg)
	require.NoError(t, tc.Init(context.Background()))

	expectTxSearch(tc, 11, []byte("not a protobuf tx"))

	result, err := tc.Poll(context.Background(), testTxHash)
	require.NoError(t, err)
	require.Equal(t, txcache.TxStatusFailure, result.Status)
	require.Nil(t, result.TxData)

	history, err := tc.TxHistory(context.Background())
	require.NoError(t, err)
	require.Empty(t, history)
}
