package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	cosmosdb "github.com/cosmos/cosmos-db"
)

// TxEntry is one submitted transaction recorded in the history.
type TxEntry struct {
	Chain       string    `json:"chain"`
	ChainID     string    `json:"chainId"`
	TxHash      string    `json:"txHash"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Handle is one reference on a shared history database. Release must be
// called exactly once per Open; further calls are no-ops.
type Handle struct {
	pool     *Pool
	path     string
	db       cosmosdb.DB
	released atomic.Bool
}

// Path is the absolute path of the underlying database directory.
func (h *Handle) Path() string {
	return h.path
}

// Release drops this reference. The database is closed when no references
// remain.
func (h *Handle) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return nil
	}
	return h.pool.release(h.path)
}

// SaveTx records txHash as submitted on chainID at submittedAt.
func (h *Handle) SaveTx(chain, chainID, txHash string, submittedAt time.Time) error {
	if h.released.Load() {
		return ErrHandleReleased
	}

	entry := TxEntry{
		Chain:       chain,
		ChainID:     chainID,
		TxHash:      txHash,
		SubmittedAt: submittedAt.UTC(),
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return ErrTxStorage.Wrapf("encoding %s: %v", txHash, err)
	}
	if err := h.db.SetSync(txKey(chain, chainID, txHash), value); err != nil {
		return ErrTxStorage.Wrapf("saving %s: %v", txHash, err)
	}
	return nil
}

// GetTxs returns the history of chainID ordered by submission time.
func (h *Handle) GetTxs(chain, chainID string) ([]TxEntry, error) {
	if h.released.Load() {
		return nil, ErrHandleReleased
	}

	prefix := txPrefix(chain, chainID)
	iter, err := h.db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, ErrTxStorage.Wrapf("iterating %s/%s: %v", chain, chainID, err)
	}
	defer iter.Close()

	var entries []TxEntry
	for ; iter.Valid(); iter.Next() {
		var entry TxEntry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, ErrTxStorage.Wrapf("decoding %q: %v", iter.Key(), err)
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, ErrTxStorage.Wrapf("iterating %s/%s: %v", chain, chainID, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
	return entries, nil
}

// DeleteTx removes txHash from the history. Deleting an unknown hash is not
// an error.
func (h *Handle) DeleteTx(chain, chainID, txHash string) error {
	if h.released.Load() {
		return ErrHandleReleased
	}
	if err := h.db.DeleteSync(txKey(chain, chainID, txHash)); err != nil {
		return ErrTxStorage.Wrapf("deleting %s: %v", txHash, err)
	}
	return nil
}

func txPrefix(chain, chainID string) []byte {
	return []byte(fmt.Sprintf("tx/%s/%s/", strings.ToLower(chain), chainID))
}

func txKey(chain, chainID, txHash string) []byte {
	return append(txPrefix(chain, chainID), []byte(txHash)...)
}

// prefixEnd is the exclusive upper bound of keys starting with prefix. Every
// prefix ends in '/', so incrementing the last byte cannot overflow.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}
