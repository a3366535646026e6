package vault

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tyler-smith/go-bip39"
)

const algoSecp256k1 = "secp256k1"

var privateKeyHexRegex = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

// Wallet is the signing capability handed out by the vault.
type Wallet interface {
	// GetAccounts returns the wallet accounts; the first one is primary.
	GetAccounts() ([]AccountData, error)
	// SignDirect signs the protobuf encoding of signDoc with the key of
	// signerAddress.
	SignDirect(signerAddress string, signDoc *txtypes.SignDoc) (*DirectSignResponse, error)
}

// AccountData describes one account held by a Wallet.
type AccountData struct {
	Address string `json:"address"`
	Algo    string `json:"algo"`
	PubKey  []byte `json:"pubkey"`
}

// DirectSignResponse carries the signed document and its signature.
type DirectSignResponse struct {
	Signed    *txtypes.SignDoc
	PubKey    []byte
	Signature []byte
}

// IsPrivateKeyHex reports whether secret is a hex encoded 32 byte key, with
// or without a 0x prefix.
func IsPrivateKeyHex(secret string) bool {
	return privateKeyHexRegex.MatchString(strings.TrimSpace(secret))
}

type secp256k1Wallet struct {
	privKey *secp256k1.PrivKey
	address string
}

var _ Wallet = (*secp256k1Wallet)(nil)

// WalletFromPrivateKey imports a hex encoded secp256k1 private key.
func WalletFromPrivateKey(privateKeyHex, prefix string) (Wallet, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if !privateKeyHexRegex.MatchString(privateKeyHex) {
		return nil, ErrInvalidPrivateKey.Wrap("expected 64 hex characters")
	}

	keyBz, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, ErrInvalidPrivateKey.Wrapf("hex decode: %v", err)
	}

	return newSecp256k1Wallet(&secp256k1.PrivKey{Key: keyBz}, prefix)
}

// WalletFromMnemonic derives the first account of mnemonic along the
// HD path selected by prefix.
func WalletFromMnemonic(mnemonic, prefix string) (Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	derivedBz, err := hd.Secp256k1.Derive()(mnemonic, "", HDPathForPrefix(prefix))
	if err != nil {
		return nil, ErrInvalidMnemonic.Wrapf("derive: %v", err)
	}

	privKey, ok := hd.Secp256k1.Generate()(derivedBz).(*secp256k1.PrivKey)
	if !ok {
		return nil, ErrUnsupportedAlgorithm.Wrap("derived key is not secp256k1")
	}

	return newSecp256k1Wallet(privKey, prefix)
}

// NewMnemonic returns a fresh 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func newSecp256k1Wallet(privKey *secp256k1.PrivKey, prefix string) (*secp256k1Wallet, error) {
	address, err := sdk.Bech32ifyAddressBytes(prefix, privKey.PubKey().Address())
	if err != nil {
		return nil, ErrInvalidPrivateKey.Wrapf("bech32 address with prefix %q: %v", prefix, err)
	}

	return &secp256k1Wallet{privKey: privKey, address: address}, nil
}

func (w *secp256k1Wallet) GetAccounts() ([]AccountData, error) {
	return []AccountData{{
		Address: w.address,
		Algo:    algoSecp256k1,
		PubKey:  w.privKey.PubKey().Bytes(),
	}}, nil
}

func (w *secp256k1Wallet) SignDirect(signerAddress string, signDoc *txtypes.SignDoc) (*DirectSignResponse, error) {
	if signerAddress != w.address {
		return nil, ErrSignerMismatch.Wrapf("got %s, wallet holds %s", signerAddress, w.address)
	}

	signBytes, err := signDoc.Marshal()
	if err != nil {
		return nil, err
	}

	signature, err := w.privKey.Sign(signBytes)
	if err != nil {
		return nil, err
	}

	return &DirectSignResponse{
		Signed:    signDoc,
		PubKey:    w.privKey.PubKey().Bytes(),
		Signature: signature,
	}, nil
}

// PrimaryAddress returns the address of the first account of wallet.
func PrimaryAddress(wallet Wallet) (string, error) {
	accounts, err := wallet.GetAccounts()
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", ErrInvalidPrivateKey.Wrap("wallet has no accounts")
	}
	return accounts[0].Address, nil
}
