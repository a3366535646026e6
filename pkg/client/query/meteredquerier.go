package query

import (
	"context"
	"time"

	"github.com/cosmos/gogoproto/grpc"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	googlegrpc "google.golang.org/grpc"
)

const (
	labelClient = "client"
	labelMethod = "method"
	labelStatus = "status"
)

// GRPCCallDurationSeconds observes the duration of gRPC-over-ABCI queries,
// labeled by client ("<chain>_<network>"), gRPC method and outcome.
var GRPCCallDurationSeconds metrics.Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
	Subsystem: "chain_query",
	Name:      "grpc_call_duration_seconds",
	Help:      "Duration of gRPC queries issued to chain nodes.",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
}, []string{labelClient, labelMethod, labelStatus})

// grpcClientWithDebugMetrics is a wrapper around grpc.ClientConn that captures the duration of gRPC calls.
type grpcClientWithDebugMetrics struct {
	grpc.ClientConn
	label string
}

// NewGRPCClientWithDebugMetrics wraps clientConn so every Invoke is observed
// in GRPCCallDurationSeconds under label.
func NewGRPCClientWithDebugMetrics(clientConn grpc.ClientConn, label string) grpc.ClientConn {
	return &grpcClientWithDebugMetrics{
		ClientConn: clientConn,
		label:      label,
	}
}

// Invoke wraps the ClientConn's Invoke method to capture the duration of the call.
func (m *grpcClientWithDebugMetrics) Invoke(
	ctx context.Context,
	method string,
	args, reply any,
	opts ...googlegrpc.CallOption,
) error {
	start := time.Now()
	err := m.ClientConn.Invoke(ctx, method, args, reply, opts...)

	status := "ok"
	if err != nil {
		status = "error"
	}
	GRPCCallDurationSeconds.
		With(labelClient, m.label, labelMethod, method, labelStatus, status).
		Observe(time.Since(start).Seconds())
	return err
}
