// Package assets resolves a chain's token metadata from a chain-registry
// style asset list, indexed by symbol and by base denom.
package assets

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// SourceType selects where Load reads the asset list from.
type SourceType string

const (
	SourceTypeURL  SourceType = "URL"
	SourceTypeFile SourceType = "FILE"
)

// ParseSourceType accepts source types case-insensitively.
func ParseSourceType(sourceType string) (SourceType, error) {
	switch SourceType(strings.ToUpper(strings.TrimSpace(sourceType))) {
	case SourceTypeURL:
		return SourceTypeURL, nil
	case SourceTypeFile:
		return SourceTypeFile, nil
	default:
		return "", ErrUnsupportedSourceType.Wrapf("%q", sourceType)
	}
}

// Fetcher retrieves the body of a remote document.
type Fetcher interface {
	Get(ctx context.Context, logger polylog.Logger, url string) ([]byte, error)
}

// Registry holds the asset list of one chain network. It is safe for
// concurrent use; a failed Load leaves the previously loaded state intact.
type Registry struct {
	logger  polylog.Logger
	fetcher Fetcher

	mu       sync.RWMutex
	assets   []Asset
	bySymbol map[string]*Asset
}

func NewRegistry(logger polylog.Logger, fetcher Fetcher) *Registry {
	return &Registry{
		logger:   logger.With(polylog.FieldComponent, "asset_registry"),
		fetcher:  fetcher,
		bySymbol: make(map[string]*Asset),
	}
}

// Load reads and parses the asset list at source, then replaces the registry
// contents with its top-level "assets" array.
func (r *Registry) Load(ctx context.Context, source string, sourceType SourceType) error {
	logger := r.logger.With("source", source, "source_type", string(sourceType))

	var (
		bz  []byte
		err error
	)
	switch sourceType {
	case SourceTypeURL:
		if r.fetcher == nil {
			return ErrAssetListLoad.Wrap("no HTTP fetcher configured")
		}
		bz, err = r.fetcher.Get(ctx, logger, source)
	case SourceTypeFile:
		bz, err = os.ReadFile(source)
	default:
		return ErrUnsupportedSourceType.Wrapf("%q", sourceType)
	}
	if err != nil {
		return ErrAssetListLoad.Wrapf("reading %s: %v", source, err)
	}

	var list AssetList
	if err := json.Unmarshal(bz, &list); err != nil {
		return ErrAssetListLoad.Wrapf("parsing %s: %v", source, err)
	}
	if list.Assets == nil {
		return ErrAssetListLoad.Wrapf("%s has no top-level \"assets\" array", source)
	}

	r.setAssets(list.Assets)
	logger.Info().Int("num_assets", len(list.Assets)).Msg("asset list loaded")
	return nil
}

// setAssets builds the symbol index eagerly. The first asset wins when two
// share a symbol.
func (r *Registry) setAssets(assets []Asset) {
	bySymbol := make(map[string]*Asset, len(assets))
	for i := range assets {
		symbol := strings.ToUpper(assets[i].Symbol)
		if _, exists := bySymbol[symbol]; !exists {
			bySymbol[symbol] = &assets[i]
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = assets
	r.bySymbol = bySymbol
}

// Assets returns a copy of the loaded assets in list order.
func (r *Registry) Assets() []Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Asset(nil), r.assets...)
}

// AssetBySymbol matches symbol case-insensitively.
func (r *Registry) AssetBySymbol(symbol string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return nil, false
	}
	found := *asset
	return &found, true
}

// AssetByBase matches base case-insensitively with a linear scan.
func (r *Registry) AssetByBase(base string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.assets {
		if strings.EqualFold(r.assets[i].Base, base) {
			found := r.assets[i]
			return &found, true
		}
	}
	return nil, false
}

// Decimals is Decimals(asset), exposed on the registry for callers holding
// only the registry.
func (r *Registry) Decimals(asset *Asset) int {
	return Decimals(asset)
}
