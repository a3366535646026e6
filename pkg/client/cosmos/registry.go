package cosmos

import (
	"errors"
	"sort"
	"sync"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// ChainFactory builds the Chain of a chain network. It returns
// ErrUnsupportedChain when the network is not configured.
type ChainFactory func(chain, network string) (*Chain, error)

// Registry hands out one Chain per "<chain>_<network>" key. A closed Chain
// is removed and the next Get builds a fresh one.
type Registry struct {
	logger  polylog.Logger
	factory ChainFactory

	mu     sync.Mutex
	chains map[string]*Chain
}

func NewRegistry(logger polylog.Logger, factory ChainFactory) *Registry {
	return &Registry{
		logger:  logger.With(polylog.FieldComponent, "chain_registry"),
		factory: factory,
		chains:  make(map[string]*Chain),
	}
}

// Get returns the Chain of chain and network, building it on first use.
func (r *Registry) Get(chain, network string) (*Chain, error) {
	if !IsSupportedChain(chain) || !IsSupportedNetwork(network) {
		return nil, ErrUnsupportedChain.Wrapf("%s/%s", chain, network)
	}
	key := Key(chain, network)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.chains[key]; ok {
		return existing, nil
	}

	created, err := r.factory(chain, network)
	if err != nil {
		return nil, err
	}

	created.mu.Lock()
	created.onClose = func() { r.remove(key, created) }
	created.mu.Unlock()

	r.chains[key] = created
	r.logger.Debug().Str("key", key).Msg("chain client created")
	return created, nil
}

// Keys lists the keys of the live chains in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.chains))
	for key := range r.chains {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CloseAll closes every live chain and returns their joined errors.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	chains := make([]*Chain, 0, len(r.chains))
	for _, c := range r.chains {
		chains = append(chains, c)
	}
	r.mu.Unlock()

	var errs []error
	for _, c := range chains {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// remove drops key only if it still maps to c.
func (r *Registry) remove(key string, c *Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.chains[key] == c {
		delete(r.chains, key)
	}
}
