package testrpc

import (
	"context"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/stretchr/testify/mock"
)

var _ rpcclient.Client = (*MockCometClient)(nil)

// MockCometClient is a testify mock of the CometBFT RPC client. Only the
// methods exercised by the chain clients are mocked; calling any other method
// panics on the nil embedded interface.
type MockCometClient struct {
	rpcclient.Client
	mock.Mock
}

// String resolves the selector shared by the embedded client and mock.Mock.
func (m *MockCometClient) String() string { return "MockCometClient" }

func (m *MockCometClient) Status(ctx context.Context) (*coretypes.ResultStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*coretypes.ResultStatus)
	return status, args.Error(1)
}

func (m *MockCometClient) ABCIInfo(ctx context.Context) (*coretypes.ResultABCIInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(*coretypes.ResultABCIInfo)
	return info, args.Error(1)
}

func (m *MockCometClient) ABCIQuery(
	ctx context.Context,
	path string,
	data cmtbytes.HexBytes,
) (*coretypes.ResultABCIQuery, error) {
	args := m.Called(ctx, path, data)
	res, _ := args.Get(0).(*coretypes.ResultABCIQuery)
	return res, args.Error(1)
}

func (m *MockCometClient) ABCIQueryWithOptions(
	ctx context.Context,
	path string,
	data cmtbytes.HexBytes,
	opts rpcclient.ABCIQueryOptions,
) (*coretypes.ResultABCIQuery, error) {
	args := m.Called(ctx, path, data, opts)
	res, _ := args.Get(0).(*coretypes.ResultABCIQuery)
	return res, args.Error(1)
}

func (m *MockCometClient) Block(ctx context.Context, height *int64) (*coretypes.ResultBlock, error) {
	args := m.Called(ctx, height)
	block, _ := args.Get(0).(*coretypes.ResultBlock)
	return block, args.Error(1)
}

func (m *MockCometClient) TxSearch(
	ctx context.Context,
	query string,
	prove bool,
	page, perPage *int,
	orderBy string,
) (*coretypes.ResultTxSearch, error) {
	args := m.Called(ctx, query, prove, page, perPage, orderBy)
	res, _ := args.Get(0).(*coretypes.ResultTxSearch)
	return res, args.Error(1)
}

func (m *MockCometClient) Subscribe(
	ctx context.Context,
	subscriber, query string,
	outCapacity ...int,
) (<-chan coretypes.ResultEvent, error) {
	args := m.Called(ctx, subscriber, query)
	out, _ := args.Get(0).(<-chan coretypes.ResultEvent)
	return out, args.Error(1)
}

func (m *MockCometClient) Unsubscribe(ctx context.Context, subscriber, query string) error {
	return m.Called(ctx, subscriber, query).Error(0)
}

func (m *MockCometClient) IsRunning() bool {
	return m.Called().Bool(0)
}

func (m *MockCometClient) Stop() error {
	return m.Called().Error(0)
}
