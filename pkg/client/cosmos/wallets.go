package cosmos

import (
	"context"
	"encoding/json"

	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

// GetWallet decrypts the stored key of address with the configured
// passphrase. It fails with wallet.ErrWalletNotFound,
// passphrase.ErrMissingPassphrase or vault.ErrDecryption.
func (c *Chain) GetWallet(_ context.Context, address string) (vault.Wallet, error) {
	encryptedKey, err := c.wallets.Read(c.cfg.Chain, address)
	if err != nil {
		return nil, err
	}
	password, err := passphrase.Require(c.passphrase)
	if err != nil {
		return nil, err
	}
	return c.crypto.Decrypt(encryptedKey, password, c.cfg.Bech32Prefix)
}

// AddWallet derives a wallet from a hex private key or a mnemonic, stores it
// encrypted with the configured passphrase and returns its address.
func (c *Chain) AddWallet(_ context.Context, secret string) (string, error) {
	w, err := c.crypto.WalletFromSecret(secret, c.cfg.Bech32Prefix)
	if err != nil {
		return "", err
	}
	address, err := vault.PrimaryAddress(w)
	if err != nil {
		return "", err
	}

	password, err := passphrase.Require(c.passphrase)
	if err != nil {
		return "", err
	}
	encryptedKey, err := c.crypto.Encrypt(secret, password)
	if err != nil {
		return "", err
	}
	if err := c.wallets.Write(c.cfg.Chain, address, encryptedKey); err != nil {
		return "", err
	}

	c.logger.Info().Str(polylog.FieldAddress, address).Msg("wallet added")
	return address, nil
}

// QueryContract sends a smart query to contractAddr.
func (c *Chain) QueryContract(ctx context.Context, contractAddr string, query any) (json.RawMessage, error) {
	conn, err := c.readyConn()
	if err != nil {
		return nil, err
	}
	return conn.contracts.SmartQuery(ctx, contractAddr, query)
}
