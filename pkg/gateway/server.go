// Package gateway serves the chain clients over a small JSON HTTP API used
// by the trading engine: balances, transaction polling and wallet storage.
package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

const (
	maxRequestBodyBytes = 1 << 20
	shutdownTimeout     = 10 * time.Second
)

// Server is an HTTP server exposing the chain clients of a cosmos.Registry.
type Server struct {
	logger        polylog.Logger
	listenAddress string
	registry      *cosmos.Registry
	wallets       *wallet.FileStore
	router        chi.Router
}

// ServerOptionFn configures a Server.
type ServerOptionFn func(*Server)

// WithListenAddress sets the "host:port" the server listens on.
func WithListenAddress(listenAddress string) ServerOptionFn {
	return func(srv *Server) {
		srv.listenAddress = listenAddress
	}
}

// NewServer returns a Server routing requests to the chains of registry.
// wallets backs the wallet listing and removal routes.
func NewServer(
	logger polylog.Logger,
	registry *cosmos.Registry,
	wallets *wallet.FileStore,
	opts ...ServerOptionFn,
) *Server {
	srv := &Server{
		logger:   logger.With(polylog.FieldComponent, "gateway_server"),
		registry: registry,
		wallets:  wallets,
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.router = srv.routes()
	return srv
}

func (srv *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", srv.handleHealth)

	r.Route("/cosmos", func(cr chi.Router) {
		cr.Post("/balances", srv.handleBalances)
		cr.Post("/poll", srv.handlePoll)
		cr.Get("/tokens", srv.handleTokens)
	})

	r.Route("/wallet", func(wr chi.Router) {
		wr.Get("/", srv.handleListWallets)
		wr.Post("/add", srv.handleAddWallet)
		wr.Delete("/", srv.handleRemoveWallet)
	})
	return r
}

// Handler is the root HTTP handler, for use with httptest.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Serve starts the HTTP server. It blocks until ctx is canceled, then shuts
// the server down gracefully.
func (srv *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", srv.listenAddress)
	if err != nil {
		return err
	}
	return srv.ServeListener(ctx, listener)
}

// ServeListener is Serve on an existing listener.
func (srv *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func(httpServer *http.Server) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}(httpServer)

	srv.logger.Info().Str("listen_address", listener.Addr().String()).Msg("serving gateway API")
	err := httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// readyChain returns the chain of chain and network, initializing it first
// if needed.
func (srv *Server) readyChain(ctx context.Context, chain, network string) (*cosmos.Chain, error) {
	if chain == "" || network == "" {
		return nil, ErrBadRequest.Wrap("chain and network are required")
	}
	c, err := srv.registry.Get(chain, network)
	if err != nil {
		return nil, err
	}
	if !c.Ready() {
		if err := c.Init(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(res, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		srv.logger.Debug().
			Str("method", req.Method).
			Str(polylog.FieldPath, req.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(req.Context())).
			Msg("handled request")
	})
}
