package rpc

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	rpcSubsystem = "chain_rpc"

	requestsTotal       = "requests_total"
	requestsErrorsTotal = "requests_errors_total"

	labelClient = "client"
	labelMethod = "method"
)

var (
	// RPCRequestsTotal counts rate-limited RPC calls dispatched to chain nodes,
	// labeled by client ("<chain>_<network>") and RPC method.
	RPCRequestsTotal metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Subsystem: rpcSubsystem,
		Name:      requestsTotal,
		Help:      "Total number of RPC requests dispatched to chain nodes.",
	}, []string{labelClient, labelMethod})

	// RPCRequestErrorsTotal counts dispatched calls which returned an error.
	RPCRequestErrorsTotal metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Subsystem: rpcSubsystem,
		Name:      requestsErrorsTotal,
		Help:      "Total number of RPC requests which returned an error.",
	}, []string{labelClient, labelMethod})
)
