// Package store persists the transaction history of the chain clients in an
// embedded pebble database. Every client referencing the same path shares a
// single database which stays open until the last reference is released.
package store

import (
	"path/filepath"
	"sync"

	cosmosdb "github.com/cosmos/cosmos-db"
)

const dbName = "tx-history"

var defaultPool = NewPool()

// Open acquires a handle on the database at path from the process-wide pool.
func Open(path string) (*Handle, error) {
	return defaultPool.Open(path)
}

// DefaultPool returns the process-wide pool used by Open.
func DefaultPool() *Pool {
	return defaultPool
}

// Pool reference-counts open databases by their absolute path.
type Pool struct {
	mu  sync.Mutex
	dbs map[string]*sharedDB
}

type sharedDB struct {
	db   cosmosdb.DB
	refs int
}

func NewPool() *Pool {
	return &Pool{dbs: make(map[string]*sharedDB)}
}

// Open returns a new handle on the database at path, opening it if this is
// the first outstanding reference.
func (p *Pool) Open(path string) (*Handle, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrTxStorage.Wrapf("resolving %q: %v", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	shared, ok := p.dbs[key]
	if !ok {
		db, err := cosmosdb.NewPebbleDB(dbName, key, nil)
		if err != nil {
			return nil, ErrTxStorage.Wrapf("opening %q: %v", key, err)
		}
		shared = &sharedDB{db: db}
		p.dbs[key] = shared
	}
	shared.refs++

	return &Handle{pool: p, path: key, db: shared.db}, nil
}

// Refs reports the number of outstanding handles on path.
func (p *Pool) Refs(path string) int {
	key, err := filepath.Abs(path)
	if err != nil {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if shared, ok := p.dbs[key]; ok {
		return shared.refs
	}
	return 0
}

func (p *Pool) release(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	shared, ok := p.dbs[key]
	if !ok {
		return nil
	}
	shared.refs--
	if shared.refs > 0 {
		return nil
	}

	delete(p.dbs, key)
	if err := shared.db.Close(); err != nil {
		return ErrTxStorage.Wrapf("closing %q: %v", key, err)
	}
	return nil
}
