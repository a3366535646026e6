// Package signals turns process signals into a graceful shutdown.
package signals

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	shutDownTimeout = 30 * time.Second

	// exitCodeDoubleInterrupt is 128 + SIGINT.
	exitCodeDoubleInterrupt = 130
	exitCodeTimeout         = 1
)

// GoOnExitSignal calls onInterrupt when the process receives SIGINT or
// SIGTERM. A second signal, or a shutdown exceeding shutDownTimeout, exits
// the process immediately.
func GoOnExitSignal(logger polylog.Logger, onInterrupt func()) {
	// SIGKILL cannot be trapped.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go awaitExit(logger, sigCh, onInterrupt, shutDownTimeout, os.Exit)
}

func awaitExit(
	logger polylog.Logger,
	sigCh <-chan os.Signal,
	onInterrupt func(),
	timeout time.Duration,
	exit func(code int),
) {
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("starting graceful shutdown")

	done := make(chan struct{})
	go func() {
		defer close(done)
		onInterrupt()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		logger.Info().Msg("graceful shutdown completed")
	case sig := <-sigCh:
		logger.Warn().Str("signal", sig.String()).Msg("second signal during shutdown, exiting")
		exit(exitCodeDoubleInterrupt)
	case <-timer.C:
		logger.Warn().Dur("timeout", timeout).Msg("graceful shutdown timed out, exiting")
		exit(exitCodeTimeout)
	}
}
