// Package vault encrypts wallet secrets (raw private keys or mnemonics) with
// a password and turns decrypted secrets back into signing wallets.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 500_000
	// MaxIterations bounds the PBKDF2 work a stored key can request.
	MaxIterations = 10 * DefaultIterations

	saltSize = 16
	ivSize   = 16
	keySize  = 32
)

// CryptoProvider is the key-management capability composed into chain
// clients.
type CryptoProvider interface {
	Encrypt(secret, password string) (*EncryptedPrivateKey, error)
	Decrypt(encryptedKey *EncryptedPrivateKey, password, prefix string) (Wallet, error)
	WalletFromPrivateKey(privateKeyHex, prefix string) (Wallet, error)
	WalletFromMnemonic(mnemonic, prefix string) (Wallet, error)
	// WalletFromSecret accepts either a hex private key or a mnemonic.
	WalletFromSecret(secret, prefix string) (Wallet, error)
}

var _ CryptoProvider = (*Vault)(nil)

// Vault is the PBKDF2-SHA256 / AES-256-GCM CryptoProvider.
type Vault struct {
	iterations int
}

// VaultOptionFn configures a Vault.
type VaultOptionFn func(*Vault)

// WithIterations overrides the PBKDF2 iteration count used by Encrypt.
// Decrypt always uses the count recorded in the encrypted key.
func WithIterations(iterations int) VaultOptionFn {
	return func(v *Vault) {
		v.iterations = iterations
	}
}

func NewVault(opts ...VaultOptionFn) *Vault {
	v := &Vault{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Encrypt seals secret under a key derived from password. A fresh salt and
// IV are drawn for every call.
func (v *Vault) Encrypt(secret, password string) (*EncryptedPrivateKey, error) {
	salt := make([]byte, saltSize)
	iv := make([]byte, ivSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, ErrEncryption.Wrapf("salt: %v", err)
	}
	if _, err := rand.Read(iv); err != nil {
		return nil, ErrEncryption.Wrapf("iv: %v", err)
	}

	keyAlgorithm := KeyAlgorithm{
		Name:       KeyAlgorithmPBKDF2,
		Salt:       salt,
		Iterations: v.iterations,
		Hash:       HashSHA256,
	}

	gcm, err := newGCM(password, keyAlgorithm)
	if err != nil {
		return nil, ErrEncryption.Wrap(err.Error())
	}

	return &EncryptedPrivateKey{
		KeyAlgorithm:    keyAlgorithm,
		CipherAlgorithm: CipherAlgorithm{Name: CipherAlgorithmAESGCM, IV: iv},
		Ciphertext:      gcm.Seal(nil, iv, []byte(secret), nil),
	}, nil
}

// Decrypt opens encryptedKey with password and builds a wallet for prefix.
// A wrong password and a malformed plaintext both yield ErrDecryption.
func (v *Vault) Decrypt(encryptedKey *EncryptedPrivateKey, password, prefix string) (Wallet, error) {
	secret, err := v.decryptSecret(encryptedKey, password)
	if err != nil {
		return nil, err
	}

	wallet, err := v.WalletFromSecret(secret, prefix)
	if err != nil {
		return nil, ErrDecryption.Wrapf("recovered secret is neither a private key nor a mnemonic: %v", err)
	}
	return wallet, nil
}

func (v *Vault) decryptSecret(encryptedKey *EncryptedPrivateKey, password string) (string, error) {
	if encryptedKey == nil {
		return "", ErrDecryption.Wrap("nil encrypted key")
	}
	if encryptedKey.CipherAlgorithm.Name != CipherAlgorithmAESGCM {
		return "", ErrDecryption.Wrapf("unsupported cipher %q", encryptedKey.CipherAlgorithm.Name)
	}
	if len(encryptedKey.CipherAlgorithm.IV) != ivSize {
		return "", ErrDecryption.Wrapf("iv must be %d bytes", ivSize)
	}
	keyAlgorithm := encryptedKey.KeyAlgorithm
	if keyAlgorithm.Name != KeyAlgorithmPBKDF2 || keyAlgorithm.Hash != HashSHA256 {
		return "", ErrDecryption.Wrapf("unsupported key derivation %s/%s", keyAlgorithm.Name, keyAlgorithm.Hash)
	}
	if keyAlgorithm.Iterations <= 0 || keyAlgorithm.Iterations > MaxIterations {
		return "", ErrDecryption.Wrapf("iteration count %d outside [1, %d]", keyAlgorithm.Iterations, MaxIterations)
	}

	gcm, err := newGCM(password, keyAlgorithm)
	if err != nil {
		return "", ErrDecryption.Wrap(err.Error())
	}

	plaintext, err := gcm.Open(nil, encryptedKey.CipherAlgorithm.IV, encryptedKey.Ciphertext, nil)
	if err != nil {
		return "", ErrDecryption.Wrapf("authentication failed: %v", err)
	}
	if !utf8.Valid(plaintext) {
		return "", ErrDecryption.Wrap("plaintext is not valid UTF-8")
	}

	return string(plaintext), nil
}

// WalletFromSecret imports secret as a raw private key when it is 64 hex
// characters, and as a mnemonic otherwise.
func (v *Vault) WalletFromSecret(secret, prefix string) (Wallet, error) {
	secret = strings.TrimSpace(secret)
	if IsPrivateKeyHex(secret) {
		return WalletFromPrivateKey(secret, prefix)
	}
	return WalletFromMnemonic(secret, prefix)
}

func (v *Vault) WalletFromPrivateKey(privateKeyHex, prefix string) (Wallet, error) {
	return WalletFromPrivateKey(privateKeyHex, prefix)
}

func (v *Vault) WalletFromMnemonic(mnemonic, prefix string) (Wallet, error) {
	return WalletFromMnemonic(mnemonic, prefix)
}

// newGCM derives the AES-256 key described by keyAlgorithm and returns a GCM
// instance using 16 byte nonces.
func newGCM(password string, keyAlgorithm KeyAlgorithm) (cipher.AEAD, error) {
	if keyAlgorithm.Name != KeyAlgorithmPBKDF2 || keyAlgorithm.Hash != HashSHA256 {
		return nil, ErrUnsupportedAlgorithm.Wrapf("key derivation %s/%s", keyAlgorithm.Name, keyAlgorithm.Hash)
	}
	if keyAlgorithm.Iterations <= 0 {
		return nil, ErrDecryption.Wrapf("invalid iteration count %d", keyAlgorithm.Iterations)
	}

	key := pbkdf2.Key([]byte(password), keyAlgorithm.Salt, keyAlgorithm.Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, ivSize)
}
