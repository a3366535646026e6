package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pokt-network/chaingate/pkg/client/query"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzero"
	"github.com/pokt-network/chaingate/testutil/testrpc"
)

const testContract = "juno14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9skjuwg8"

// smartQueryRequest decodes a QuerySmartContractStateRequest.
func smartQueryRequest(t *testing.T, bz []byte) (string, []byte) {
	t.Helper()

	var (
		address   string
		queryData []byte
	)
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		require.GreaterOrEqual(t, n, 0)
		require.Equal(t, protowire.BytesType, typ)
		bz = bz[n:]

		value, m := protowire.ConsumeBytes(bz)
		require.GreaterOrEqual(t, m, 0)
		bz = bz[m:]

		switch num {
		case 1:
			address = string(value)
		case 2:
			queryData = value
		}
	}
	return address, queryData
}

func smartQueryResponse(data string) []byte {
	var bz []byte
	bz = protowire.AppendTag(bz, 1, protowire.BytesType)
	return protowire.AppendBytes(bz, []byte(data))
}

func TestContractQuerier_SmartQuery(t *testing.T) {
	client := &testrpc.MockCometClient{}
	client.On("ABCIQuery", mock.Anything, query.SmartContractStatePath, mock.Anything).
		Run(func(args mock.Arguments) {
			address, queryData := smartQueryRequest(t, args.Get(2).(cmtbytes.HexBytes))
			require.Equal(t, testContract, address)
			require.JSONEq(t, `{"balance":{"address":"juno1xyz"}}`, string(queryData))
		}).
		Return(&coretypes.ResultABCIQuery{Response: abci.ResponseQuery{
			Value: smartQueryResponse(`{"balance":"1000"}`),
		}}, nil)

	logger := polyzero.NewLogger(polyzero.WithLevel(polyzero.ErrorLevel))
	cq := query.NewContractQuerier(logger, client)

	msg := map[string]any{"balance": map[string]string{"address": "juno1xyz"}}
	res, err := cq.SmartQuery(context.Background(), testContract, msg)
	require.NoError(t, err)

	var balance struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(res, &balance))
	require.Equal(t, "1000", balance.Balance)
}

func TestContractQuerier_SmartQueryErrors(t *testing.T) {
	logger := polyzero.NewLogger(polyzero.WithLevel(polyzero.ErrorLevel))

	t.Run("non-zero code", func(t *testing.T) {
		client := &testrpc.MockCometClient{}
		client.On("ABCIQuery", mock.Anything, query.SmartContractStatePath, mock.Anything).
			Return(&coretypes.ResultABCIQuery{Response: abci.ResponseQuery{
				Code:      9,
				Codespace: "wasm",
				Log:       "no such contract",
			}}, nil)

		_, err := query.NewContractQuerier(logger, client).
			SmartQuery(context.Background(), testContract, json.RawMessage(`{}`))
		require.ErrorIs(t, err, query.ErrQueryContract)
		require.Contains(t, err.Error(), "no such contract")
	})

	t.Run("transport error", func(t *testing.T) {
		client := &testrpc.MockCometClient{}
		client.On("ABCIQuery", mock.Anything, query.SmartContractStatePath, mock.Anything).
			Return(nil, errors.New("EOF"))

		_, err := query.NewContractQuerier(logger, client).
			SmartQuery(context.Background(), testContract, `{}`)
		require.ErrorIs(t, err, query.ErrQueryContract)
	})

	t.Run("truncated response", func(t *testing.T) {
		client := &testrpc.MockCometClient{}
		client.On("ABCIQuery", mock.Anything, query.SmartContractStatePath, mock.Anything).
			Return(&coretypes.ResultABCIQuery{Response: abci.ResponseQuery{
				Value: smartQueryResponse(`{"a":1}`)[:4],
			}}, nil)

		_, err := query.NewContractQuerier(logger, client).
			SmartQuery(context.Background(), testContract, []byte(`{}`))
		require.ErrorIs(t, err, query.ErrQueryContractResponse)
	})

	t.Run("empty address", func(t *testing.T) {
		_, err := query.NewContractQuerier(logger, &testrpc.MockCometClient{}).
			SmartQuery(context.Background(), "", `{}`)
		require.ErrorIs(t, err, query.ErrQueryInvalidAddress)
	})
}
