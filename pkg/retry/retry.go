// Package retry re-runs failing work with a backoff strategy.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// WithDefaultExponentialDelay retries 5 times, starting at 500ms and capped at 30s.
var WithDefaultExponentialDelay = WithExponentialBackoffFn(5, 500*time.Millisecond, 30*time.Second)

// StrategyFunc returns the delay before retry number retryCount (0-based), or
// false when no further attempt should be made.
type StrategyFunc func(retryCount int) (time.Duration, bool)

// Call runs work until it succeeds, the strategy gives up, ctx is done, or
// work returns an error wrapping ErrNonRetryable. The last error is returned.
func Call[T any](
	ctx context.Context,
	workName string,
	work func(context.Context) (T, error),
	strategy ...StrategyFunc,
) (T, error) {
	if len(strategy) == 0 {
		strategy = []StrategyFunc{WithDefaultExponentialDelay}
	}
	logger := polylog.Ctx(ctx)

	for retryCount := 0; ; retryCount++ {
		result, err := work(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrNonRetryable) {
			return result, err
		}

		delay, ok := strategy[0](retryCount)
		if !ok {
			return result, err
		}

		logger.Warn().
			Str("work_name", workName).
			Err(err).
			Dur("delay", delay).
			Msgf("on retry: %d", retryCount+1)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, err
		case <-timer.C:
		}
	}
}

// WithExponentialBackoffFn doubles the delay on every retry, starting at
// initialDelay and capped at maxDelay, for at most maxRetryCount retries.
func WithExponentialBackoffFn(maxRetryCount int, initialDelay, maxDelay time.Duration) StrategyFunc {
	return func(retryCount int) (time.Duration, bool) {
		if retryCount >= maxRetryCount {
			return 0, false
		}
		delay := initialDelay << retryCount
		if delay <= 0 || delay > maxDelay {
			delay = maxDelay
		}
		return delay, true
	}
}
