package testgrpc

import (
	"context"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc"
)

var _ gogogrpc.ClientConn = (*MockClientConn)(nil)

// MockClientConn is a testify mock of the gogoproto gRPC client connection
// consumed by generated query clients. Expectations on Invoke receive the
// request and the reply pointer; populate the reply with Run.
type MockClientConn struct {
	mock.Mock
}

func (m *MockClientConn) Invoke(
	ctx context.Context,
	method string,
	args, reply any,
	_ ...grpc.CallOption,
) error {
	return m.Called(ctx, method, args, reply).Error(0)
}

func (m *MockClientConn) NewStream(
	ctx context.Context,
	desc *grpc.StreamDesc,
	method string,
	_ ...grpc.CallOption,
) (grpc.ClientStream, error) {
	args := m.Called(ctx, desc, method)
	stream, _ := args.Get(0).(grpc.ClientStream)
	return stream, args.Error(1)
}
