package testcache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pokt-network/chaingate/pkg/cache"
)

var _ cache.Store = (*MockStore)(nil)

// MockStore is a testify mock of cache.Store.
type MockStore struct {
	mock.Mock
}

// NewNoopStore returns a MockStore which always misses and accepts every write.
func NewNoopStore() *MockStore {
	store := &MockStore{}
	store.On("Get", mock.Anything, mock.Anything).Return("", cache.ErrCacheMiss)
	store.On("Has", mock.Anything, mock.Anything).Return(false, nil)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("Clear", mock.Anything).Return(nil)
	return store
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockStore) Has(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
