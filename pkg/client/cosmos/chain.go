package cosmos

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	rpcclient "github.com/cometbft/cometbft/rpc/client"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-version"
	"golang.org/x/sync/singleflight"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/cache/memory"
	"github.com/pokt-network/chaingate/pkg/client/query"
	"github.com/pokt-network/chaingate/pkg/client/rpc"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	chainhttp "github.com/pokt-network/chaingate/pkg/network/http"
	"github.com/pokt-network/chaingate/pkg/network/concurrency"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/store"
	"github.com/pokt-network/chaingate/pkg/txcache"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

const (
	websocketEndpoint = "/websocket"

	defaultWalletsDir = "./conf/wallets"
)

// minNodeVersion is the oldest CometBFT release whose RPC responses the
// client decodes.
var minNodeVersion = version.Must(version.NewVersion("0.34.0"))

// State is the connection lifecycle state of a Chain.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Dialer opens the raw RPC client of a node.
type Dialer func(ctx context.Context, nodeURL string) (rpcclient.Client, error)

// DialHTTP is the default Dialer, a CometBFT JSON-RPC over HTTP client.
func DialHTTP(_ context.Context, nodeURL string) (rpcclient.Client, error) {
	return rpchttp.New(nodeURL, websocketEndpoint)
}

// BalanceQuerier lists the balances held by an address.
type BalanceQuerier interface {
	AllBalances(ctx context.Context, address string) (sdk.Coins, error)
}

// ContractQuerier reads smart contract state.
type ContractQuerier interface {
	SmartQuery(ctx context.Context, contractAddr string, query any) (json.RawMessage, error)
}

// WalletStore persists encrypted keys per chain and address.
type WalletStore interface {
	Read(chain, address string) (*vault.EncryptedPrivateKey, error)
	Write(chain, address string, encryptedKey *vault.EncryptedPrivateKey) error
}

// connection holds everything built by a successful Init.
type connection struct {
	rpcClient   *rpc.RateLimitedClient
	bank        BalanceQuerier
	contracts   ContractQuerier
	txCache     *txcache.Cache
	chainID     string
	nodeVersion *version.Version
}

// Chain is the client of one chain network.
type Chain struct {
	logger polylog.Logger
	cfg    ChainConfig
	label  string

	dial             Dialer
	limiter          rpc.Limiter
	cacheStore       cache.Store
	bankOverride     BalanceQuerier
	contractOverride ContractQuerier
	crypto           vault.CryptoProvider
	passphrase       passphrase.Provider
	wallets          WalletStore
	fetcher          assets.Fetcher
	storagePool      *store.Pool

	assets  *assets.Registry
	storage *store.Handle

	state     atomic.Int32
	initGroup singleflight.Group

	mu          sync.RWMutex
	conn        *connection
	stopMetrics context.CancelFunc
	onClose     func()

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewChain validates cfg and builds an uninitialized Chain. It acquires a
// tx-history handle when cfg.TxStoragePath is set; Close releases it.
func NewChain(logger polylog.Logger, cfg ChainConfig, opts ...ChainOptionFn) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	label := Key(cfg.Chain, cfg.Network)
	c := &Chain{
		logger: logger.With(
			polylog.FieldComponent, "cosmos_chain",
			polylog.FieldChain, cfg.Chain,
			polylog.FieldNetwork, cfg.Network,
		),
		cfg:   cfg,
		label: label,
		dial:  DialHTTP,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.setDefaults(); err != nil {
		return nil, err
	}
	c.assets = assets.NewRegistry(c.logger, c.fetcher)

	if cfg.TxStoragePath != "" {
		handle, err := c.storagePool.Open(cfg.TxStoragePath)
		if err != nil {
			return nil, err
		}
		c.storage = handle
	}
	return c, nil
}

func (c *Chain) setDefaults() error {
	if c.limiter == nil {
		c.limiter = concurrency.NewDefaultRateLimiter()
	}
	if c.cacheStore == nil {
		memStore, err := memory.NewStore()
		if err != nil {
			return err
		}
		c.cacheStore = memStore
	}
	if c.crypto == nil {
		c.crypto = vault.NewVault()
	}
	if c.passphrase == nil {
		c.passphrase = passphrase.NewEnvProvider(passphrase.EnvPrefix)
	}
	if c.wallets == nil {
		c.wallets = wallet.NewFileStore(c.logger, defaultWalletsDir)
	}
	if c.fetcher == nil {
		c.fetcher = chainhttp.NewDefaultHTTPClientWithDebugMetrics()
	}
	if c.storagePool == nil {
		c.storagePool = store.DefaultPool()
	}
	return nil
}

// Label is the "<chain>_<network>" key of c.
func (c *Chain) Label() string {
	return c.label
}

func (c *Chain) Config() ChainConfig {
	return c.cfg
}

func (c *Chain) State() State {
	return State(c.state.Load())
}

// Ready reports whether Init has completed successfully.
func (c *Chain) Ready() bool {
	return c.State() == StateReady
}

// Init connects c to its node and loads its asset list. Concurrent calls
// share a single attempt, which is not cancelled when the caller that started
// it gives up. A failed attempt leaves c uninitialized so Init may be retried,
// and is reported as ErrProviderNotInitialized.
func (c *Chain) Init(ctx context.Context) error {
	if c.closed.Load() {
		return ErrChainClosed.Wrap(c.label)
	}
	if c.Ready() {
		return nil
	}

	_, err, _ := c.initGroup.Do(c.label, func() (any, error) {
		if c.Ready() {
			return nil, nil
		}
		c.state.Store(int32(StateInitializing))

		conn, err := c.connect(context.WithoutCancel(ctx))
		if err != nil {
			c.state.Store(int32(StateUninitialized))
			c.logger.Error().Err(err).Msg("chain client initialization failed")
			return nil, ErrProviderNotInitialized.Wrapf("%s: %v", c.label, err)
		}

		c.mu.Lock()
		if c.closed.Load() {
			c.mu.Unlock()
			c.stopClient(conn)
			c.state.Store(int32(StateUninitialized))
			return nil, ErrChainClosed.Wrap(c.label)
		}
		c.conn = conn
		c.state.Store(int32(StateReady))
		c.startMetricsLog()
		c.mu.Unlock()

		c.logger.Info().
			Str("chain_id", conn.chainID).
			Str("node_version", conn.nodeVersion.String()).
			Msg("chain client ready")
		return nil, nil
	})
	return err
}

// connect dials the node, wraps it with the rate limiter, builds the query
// clients and loads the asset list.
func (c *Chain) connect(ctx context.Context) (*connection, error) {
	logger := c.logger.With(polylog.FieldNodeURL, c.cfg.NodeURL)

	rawClient, err := c.dial(ctx, c.cfg.NodeURL)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewRateLimitedClient(rawClient, c.limiter, c.label)

	status, err := rpcClient.Status(ctx)
	if err != nil {
		return nil, err
	}

	nodeVersion, err := parseNodeVersion(status.NodeInfo.Version)
	if err != nil {
		return nil, err
	}
	if nodeVersion.LessThan(minNodeVersion) {
		logger.Warn().
			Str("node_version", nodeVersion.String()).
			Str("min_node_version", minNodeVersion.String()).
			Msg("node is older than the oldest supported version")
	}

	chainID := c.cfg.ChainID
	switch {
	case chainID == "":
		chainID = status.NodeInfo.Network
	case chainID != status.NodeInfo.Network:
		return nil, ErrInvalidConfig.Wrapf(
			"configured chain id %q but node reports %q", chainID, status.NodeInfo.Network,
		)
	}

	conn := &connection{
		rpcClient:   rpcClient,
		bank:        c.bankOverride,
		contracts:   c.contractOverride,
		txCache:     txcache.NewCache(c.logger, c.cacheStore, rpcClient, c.cfg.Chain, c.cfg.Network),
		chainID:     chainID,
		nodeVersion: nodeVersion,
	}
	if conn.bank == nil {
		clientCtx := client.Context{}.
			WithClient(rpcClient).
			WithCodec(query.QueryCodec).
			WithInterfaceRegistry(query.InterfaceRegistry).
			WithChainID(chainID)
		conn.bank = query.NewBankQuerier(c.logger, query.NewGRPCClientWithDebugMetrics(clientCtx, c.label))
	}
	if conn.contracts == nil {
		conn.contracts = query.NewContractQuerier(c.logger, rpcClient)
	}

	if err := c.assets.Load(ctx, c.cfg.TokenListSource, c.cfg.TokenListType); err != nil {
		return nil, err
	}
	return conn, nil
}

func parseNodeVersion(raw string) (*version.Version, error) {
	nodeVersion, err := version.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return nil, ErrProviderNotInitialized.Wrapf("unparseable node version %q: %v", raw, err)
	}
	return nodeVersion, nil
}

// readyConn returns the handles built by Init or ErrProviderNotInitialized.
func (c *Chain) readyConn() (*connection, error) {
	if !c.Ready() {
		return nil, ErrProviderNotInitialized.Wrapf("%s is %s", c.label, c.State())
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn, nil
}

// NodeVersion is the CometBFT version reported by the node on Init.
func (c *Chain) NodeVersion() (*version.Version, error) {
	conn, err := c.readyConn()
	if err != nil {
		return nil, err
	}
	return conn.nodeVersion, nil
}

// RequestCount is the number of RPC calls dispatched since Init.
func (c *Chain) RequestCount() uint64 {
	conn, err := c.readyConn()
	if err != nil {
		return 0
	}
	return conn.rpcClient.RequestCount()
}

// startMetricsLog periodically logs the request count. Callers MUST hold mu.
func (c *Chain) startMetricsLog() {
	if c.cfg.MetricsLogInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.stopMetrics = cancel

	go func() {
		ticker := time.NewTicker(c.cfg.MetricsLogInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.logger.Info().
					Uint64("rpc_requests", c.RequestCount()).
					Msg("chain client request count")
			}
		}
	}()
}

func (c *Chain) stopClient(conn *connection) {
	if !conn.rpcClient.IsRunning() {
		return
	}
	if err := conn.rpcClient.Stop(); err != nil {
		c.logger.Warn().Err(err).Msg("unable to stop RPC client")
	}
}

// Close stops the periodic request log, releases the tx-history handle and
// removes c from its Registry. Calls after the first are no-ops.
func (c *Chain) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		c.mu.Lock()
		stopMetrics, onClose, conn := c.stopMetrics, c.onClose, c.conn
		c.stopMetrics = nil
		c.mu.Unlock()

		if stopMetrics != nil {
			stopMetrics()
		}
		if conn != nil {
			c.stopClient(conn)
		}
		if c.storage != nil {
			err = c.storage.Release()
		}
		c.state.Store(int32(StateUninitialized))
		if onClose != nil {
			onClose()
		}
		c.logger.Info().Msg("chain client closed")
	})
	return err
}
