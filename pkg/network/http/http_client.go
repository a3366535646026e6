// Package http provides the outbound HTTP client used to fetch remote
// resources such as chain asset lists.
package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"github.com/pokt-network/chaingate/pkg/network/concurrency"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	// Maximum length of a response body.
	maxResponseSize = 16 * 1024 * 1024

	// Maximum number of concurrent outbound requests.
	concurrencyLimiterMax = 64
)

// HTTPClientWithDebugMetrics bounds outbound concurrency and logs a phase
// breakdown of every failed request.
type HTTPClientWithDebugMetrics struct {
	httpClient *http.Client
	limiter    *concurrency.ConcurrencyLimiter

	totalRequests    atomic.Uint64
	timeoutErrors    atomic.Uint64
	connectionErrors atomic.Uint64
}

type httpRequestMetrics struct {
	url              string
	startTime        time.Time
	connectTime      time.Duration
	firstByteTime    time.Duration
	connectionReused bool
	totalTime        time.Duration
}

// NewDefaultHTTPClientWithDebugMetrics returns a client with conservative
// transport timeouts suited to fetching small JSON documents.
func NewDefaultHTTPClientWithDebugMetrics() *HTTPClientWithDebugMetrics {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &HTTPClientWithDebugMetrics{
		httpClient: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		limiter:    concurrency.NewConcurrencyLimiter(concurrencyLimiterMax),
	}
}

// Get fetches url and returns the body of a 200 response.
func (h *HTTPClientWithDebugMetrics) Get(ctx context.Context, logger polylog.Logger, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.Do(ctx, logger, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// Do executes req once a concurrency slot is available.
func (h *HTTPClientWithDebugMetrics) Do(
	ctx context.Context,
	logger polylog.Logger,
	req *http.Request,
) (*http.Response, error) {
	if !h.limiter.Acquire(ctx) {
		return nil, fmt.Errorf("failed to acquire concurrency slot: %w", ctx.Err())
	}
	defer h.limiter.Release()

	h.totalRequests.Add(1)
	metrics := &httpRequestMetrics{url: req.URL.String(), startTime: time.Now()}
	req = req.WithContext(httptrace.WithClientTrace(ctx, newHTTPTrace(metrics)))

	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.totalTime = time.Since(metrics.startTime)
		err = h.categorizeError(ctx, err)
		h.logRequestMetrics(logger, metrics, err)
		return nil, err
	}
	return resp, nil
}

func (h *HTTPClientWithDebugMetrics) categorizeError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		h.timeoutErrors.Add(1)
		return fmt.Errorf("request timeout: %w", err)
	}
	h.connectionErrors.Add(1)
	return fmt.Errorf("connection error: %w", err)
}

func newHTTPTrace(metrics *httpRequestMetrics) *httptrace.ClientTrace {
	var connectStart, wroteRequest time.Time
	return &httptrace.ClientTrace{
		ConnectStart: func(string, string) { connectStart = time.Now() },
		ConnectDone: func(string, string, error) {
			if !connectStart.IsZero() {
				metrics.connectTime = time.Since(connectStart)
			}
		},
		GotConn:      func(info httptrace.GotConnInfo) { metrics.connectionReused = info.Reused },
		WroteRequest: func(httptrace.WroteRequestInfo) { wroteRequest = time.Now() },
		GotFirstResponseByte: func() {
			if !wroteRequest.IsZero() {
				metrics.firstByteTime = time.Since(wroteRequest)
			}
		},
	}
}

func (h *HTTPClientWithDebugMetrics) logRequestMetrics(logger polylog.Logger, metrics *httpRequestMetrics, err error) {
	logger.With(
		"http_client_debug_url", metrics.url,
		"http_client_debug_total_ms", metrics.totalTime.Milliseconds(),
		"http_client_debug_connect_ms", metrics.connectTime.Milliseconds(),
		"http_client_debug_first_byte_ms", metrics.firstByteTime.Milliseconds(),
		"http_client_debug_connection_reused", metrics.connectionReused,
		"http_client_debug_total_requests", h.totalRequests.Load(),
		"http_client_debug_timeout_errors", h.timeoutErrors.Load(),
		"http_client_debug_connection_errors", h.connectionErrors.Load(),
	).Error().Err(err).Msg("HTTP request failed")
}
