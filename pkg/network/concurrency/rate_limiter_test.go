package concurrency_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/network/concurrency"
)

func TestRateLimiter_SequentialWithMinInterval(t *testing.T) {
	const (
		numCalls    = 3
		minInterval = 300 * time.Millisecond
	)
	limiter := concurrency.NewRateLimiter(1, minInterval)

	var (
		mu          sync.Mutex
		starts      []time.Time
		order       []int
		running     int
		maxObserved int
		wg          sync.WaitGroup
	)

	for i := 0; i < numCalls; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := limiter.Schedule(context.Background(), func(context.Context) error {
				mu.Lock()
				starts = append(starts, time.Now())
				order = append(order, idx)
				running++
				if running > maxObserved {
					maxObserved = running
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)
		}(i)
		// Give each goroutine time to enqueue so submission order is deterministic.
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	require.Equal(t, 1, maxObserved)
	require.Equal(t, []int{0, 1, 2}, order)
	for i := 1; i < len(starts); i++ {
		// rate.Limiter rounds reservations to its internal clock, allow 1ms slack.
		require.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), minInterval-time.Millisecond)
	}
}

func TestRateLimiter_PropagatesErrorsUnchanged(t *testing.T) {
	limiter := concurrency.NewRateLimiter(1, 0)
	expectedErr := errors.New("connection refused")

	calls := 0
	err := limiter.Schedule(context.Background(), func(context.Context) error {
		calls++
		return expectedErr
	})
	require.Same(t, expectedErr, err)
	require.Equal(t, 1, calls)
}

func TestRateLimiter_ContextCanceledWhileQueued(t *testing.T) {
	limiter := concurrency.NewRateLimiter(1, time.Hour)

	// First call consumes the only token.
	require.NoError(t, limiter.Schedule(context.Background(), func(context.Context) error { return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ran := false
	err := limiter.Schedule(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	require.False(t, ran)
	require.Zero(t, limiter.Pending())
}

func TestConcurrencyLimiter_AcquireRelease(t *testing.T) {
	cl := concurrency.NewConcurrencyLimiter(2)
	ctx := context.Background()

	require.True(t, cl.Acquire(ctx))
	require.True(t, cl.Acquire(ctx))
	require.EqualValues(t, 2, cl.ActiveRequests())

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	require.False(t, cl.Acquire(timeoutCtx))

	cl.Release()
	cl.Release()
	cl.Release() // unmatched release is ignored
	require.Zero(t, cl.ActiveRequests())
}

func TestRateLimiter_DefaultDispatchesOncePerSecond(t *testing.T) {
	if testing.Short() {
		t.Skip("takes two seconds")
	}

	limiter := concurrency.NewDefaultRateLimiter()
	require.Equal(t, time.Second, limiter.MinInterval())

	var starts []time.Time
	for i := 0; i < 3; i++ {
		err := limiter.Schedule(context.Background(), func(context.Context) error {
			starts = append(starts, time.Now())
			return nil
		})
		require.NoError(t, err)
	}

	require.Len(t, starts, 3)
	require.GreaterOrEqual(t, starts[1].Sub(starts[0]), time.Second-time.Millisecond)
	require.GreaterOrEqual(t, starts[2].Sub(starts[1]), time.Second-time.Millisecond)
}
