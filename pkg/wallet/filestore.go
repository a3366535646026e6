// Package wallet persists encrypted wallet secrets, one JSON file per address
// under a chain-scoped directory: <root>/<chain>/<address>.json.
package wallet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	walletFileExt = ".json"

	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore reads and writes EncryptedPrivateKey files.
type FileStore struct {
	logger polylog.Logger
	root   string
}

func NewFileStore(logger polylog.Logger, root string) *FileStore {
	return &FileStore{
		logger: logger.With(polylog.FieldComponent, "wallet_store", polylog.FieldPath, root),
		root:   root,
	}
}

// Root returns the directory holding the per-chain wallet directories.
func (s *FileStore) Root() string {
	return s.root
}

// Read returns the encrypted key stored for address on chain, or
// ErrWalletNotFound.
func (s *FileStore) Read(chain, address string) (*vault.EncryptedPrivateKey, error) {
	path, err := s.walletPath(chain, address)
	if err != nil {
		return nil, err
	}

	bz, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrWalletNotFound.Wrapf("chain: %s, address: %s", chain, address)
	}
	if err != nil {
		return nil, ErrWalletStore.Wrapf("reading %s: %v", path, err)
	}

	return vault.UnmarshalEncryptedPrivateKey(bz)
}

// Write stores encryptedKey for address on chain, replacing any previous file.
func (s *FileStore) Write(chain, address string, encryptedKey *vault.EncryptedPrivateKey) error {
	path, err := s.walletPath(chain, address)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return ErrWalletStore.Wrapf("creating %s: %v", filepath.Dir(path), err)
	}

	bz, err := encryptedKey.Marshal()
	if err != nil {
		return ErrWalletStore.Wrapf("encoding wallet: %v", err)
	}

	if err := os.WriteFile(path, bz, filePerm); err != nil {
		return ErrWalletStore.Wrapf("writing %s: %v", path, err)
	}

	s.logger.Info().
		Str(polylog.FieldChain, chain).
		Str(polylog.FieldAddress, address).
		Msg("wallet stored")
	return nil
}

// Remove deletes the wallet file for address. Removing an absent wallet is
// not an error.
func (s *FileStore) Remove(chain, address string) error {
	path, err := s.walletPath(chain, address)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWalletStore.Wrapf("removing %s: %v", path, err)
	}
	return nil
}

// List returns the addresses stored for chain, sorted. A chain without a
// directory has no wallets.
func (s *FileStore) List(chain string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, chain))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ErrWalletStore.Wrapf("listing %s: %v", chain, err)
	}

	var addresses []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != walletFileExt {
			continue
		}
		addresses = append(addresses, strings.TrimSuffix(name, walletFileExt))
	}
	sort.Strings(addresses)
	return addresses, nil
}

// Chains returns the chain directories present under root, sorted.
func (s *FileStore) Chains() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ErrWalletStore.Wrapf("listing %s: %v", s.root, err)
	}

	var chains []string
	for _, entry := range entries {
		if entry.IsDir() {
			chains = append(chains, entry.Name())
		}
	}
	sort.Strings(chains)
	return chains, nil
}

// walletPath rejects components which would escape the chain directory.
func (s *FileStore) walletPath(chain, address string) (string, error) {
	for _, component := range []string{chain, address} {
		if component == "" || component == "." || component == ".." ||
			strings.ContainsAny(component, `/\`) {
			return "", ErrInvalidAddress.Wrapf("invalid path component %q", component)
		}
	}
	return filepath.Join(s.root, chain, address+walletFileExt), nil
}
