package query

import (
	"context"
	"encoding/json"

	abci "github.com/cometbft/cometbft/abci/types"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// SmartContractStatePath is the ABCI query path of the CosmWasm smart
// query gRPC method.
const SmartContractStatePath = "/cosmwasm.wasm.v1.Query/SmartContractState"

// Field numbers of QuerySmartContractStateRequest and
// QuerySmartContractStateResponse.
const (
	requestAddressField   protowire.Number = 1
	requestQueryDataField protowire.Number = 2
	responseDataField     protowire.Number = 1
)

// ABCIQuerier is the subset of the CometBFT RPC client used for raw state
// queries.
type ABCIQuerier interface {
	ABCIQuery(ctx context.Context, path string, data cmtbytes.HexBytes) (*coretypes.ResultABCIQuery, error)
}

// ContractQuerier reads CosmWasm contract state with smart queries.
type ContractQuerier struct {
	logger polylog.Logger
	client ABCIQuerier
}

func NewContractQuerier(logger polylog.Logger, client ABCIQuerier) *ContractQuerier {
	return &ContractQuerier{
		logger: logger.With(polylog.FieldComponent, "contract_querier"),
		client: client,
	}
}

// SmartQuery sends query to contractAddr and returns the contract's JSON
// answer. query may be raw JSON ([]byte or json.RawMessage) or any value
// which marshals to a JSON object.
func (cq *ContractQuerier) SmartQuery(
	ctx context.Context,
	contractAddr string,
	query any,
) (json.RawMessage, error) {
	if contractAddr == "" {
		return nil, ErrQueryInvalidAddress.Wrap("empty contract address")
	}

	queryData, err := queryJSON(query)
	if err != nil {
		return nil, ErrQueryContract.Wrapf("encoding query for %s: %v", contractAddr, err)
	}

	res, err := cq.client.ABCIQuery(ctx, SmartContractStatePath, encodeSmartQueryRequest(contractAddr, queryData))
	if err != nil {
		return nil, ErrQueryContract.Wrapf("contract %s: %v", contractAddr, err)
	}
	if res.Response.Code != abci.CodeTypeOK {
		return nil, ErrQueryContract.Wrapf(
			"contract %s: code %d (%s): %s",
			contractAddr, res.Response.Code, res.Response.Codespace, res.Response.Log,
		)
	}

	data, err := decodeSmartQueryResponse(res.Response.Value)
	if err != nil {
		return nil, err
	}

	cq.logger.Debug().
		Str(polylog.FieldAddress, contractAddr).
		Int("response_bytes", len(data)).
		Msg("queried contract state")
	return data, nil
}

func queryJSON(query any) ([]byte, error) {
	switch q := query.(type) {
	case json.RawMessage:
		return q, nil
	case []byte:
		return q, nil
	case string:
		return []byte(q), nil
	default:
		return json.Marshal(query)
	}
}

func encodeSmartQueryRequest(contractAddr string, queryData []byte) []byte {
	var bz []byte
	bz = protowire.AppendTag(bz, requestAddressField, protowire.BytesType)
	bz = protowire.AppendString(bz, contractAddr)
	bz = protowire.AppendTag(bz, requestQueryDataField, protowire.BytesType)
	bz = protowire.AppendBytes(bz, queryData)
	return bz
}

func decodeSmartQueryResponse(bz []byte) (json.RawMessage, error) {
	var data []byte
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return nil, ErrQueryContractResponse.Wrapf("tag: %v", protowire.ParseError(n))
		}
		bz = bz[n:]

		if num == responseDataField && typ == protowire.BytesType {
			value, m := protowire.ConsumeBytes(bz)
			if m < 0 {
				return nil, ErrQueryContractResponse.Wrapf("data: %v", protowire.ParseError(m))
			}
			data = append([]byte(nil), value...)
			bz = bz[m:]
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, bz)
		if m < 0 {
			return nil, ErrQueryContractResponse.Wrapf("field %d: %v", num, protowire.ParseError(m))
		}
		bz = bz[m:]
	}
	return data, nil
}
