package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// ServeMetrics exposes the default prometheus registry on addr until ctx is
// canceled. It returns once the listener is bound.
func ServeMetrics(ctx context.Context, logger polylog.Logger, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error().Err(err).Msg("failed to listen on address for metrics")
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	go func() {
		<-ctx.Done()
		_ = metricsServer.Close()
	}()

	go func() {
		logger.Info().Str("endpoint", ln.Addr().String()).Msg("serving metrics")
		if err := metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return nil
}
