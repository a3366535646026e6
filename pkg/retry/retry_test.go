package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/retry"
	"github.com/pokt-network/chaingate/testutil/testpolylog"
)

var errFlaky = errors.New("flaky")

func noDelay(maxRetryCount int) retry.StrategyFunc {
	return retry.WithExponentialBackoffFn(maxRetryCount, time.Nanosecond, time.Nanosecond)
}

func TestCall_RetriesUntilSuccess(t *testing.T) {
	logger, logs := testpolylog.NewBufferedLogger()
	ctx := logger.WithContext(context.Background())

	attempts := 0
	result, err := retry.Call(ctx, "flaky_work", func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errFlaky
		}
		return 42, nil
	}, noDelay(5))
	require.NoError(t, err)
	require.Equal(t, 42, result)
	require.Equal(t, 3, attempts)
	require.Contains(t, logs.String(), "on retry: 2")
	require.Contains(t, logs.String(), "flaky_work")
}

func TestCall_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	_, err := retry.Call(context.Background(), "failing_work", func(context.Context) (struct{}, error) {
		attempts++
		return struct{}{}, errFlaky
	}, noDelay(2))
	require.ErrorIs(t, err, errFlaky)
	require.Equal(t, 3, attempts)
}

func TestCall_StopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	_, err := retry.Call(context.Background(), "rejected_work", func(context.Context) (string, error) {
		attempts++
		return "", retry.ErrNonRetryable.Wrap("bad input")
	}, noDelay(5))
	require.ErrorIs(t, err, retry.ErrNonRetryable)
	require.Equal(t, 1, attempts)
}

func TestCall_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := retry.Call(ctx, "slow_work", func(context.Context) (int, error) {
		attempts++
		cancel()
		return 0, errFlaky
	}, retry.WithExponentialBackoffFn(5, time.Hour, time.Hour))
	require.ErrorIs(t, err, errFlaky)
	require.Equal(t, 1, attempts)
}

func TestWithExponentialBackoffFn(t *testing.T) {
	strategy := retry.WithExponentialBackoffFn(4, 100*time.Millisecond, 500*time.Millisecond)

	expected := []time.Duration{100, 200, 400, 500}
	for retryCount, expectedDelay := range expected {
		delay, ok := strategy(retryCount)
		require.True(t, ok)
		require.Equal(t, expectedDelay*time.Millisecond, delay)
	}

	_, ok := strategy(4)
	require.False(t, ok)
}
