package vault

import "encoding/json"

const (
	KeyAlgorithmPBKDF2    = "PBKDF2"
	HashSHA256            = "SHA-256"
	CipherAlgorithmAESGCM = "AES-GCM"
)

// EncryptedPrivateKey is the at-rest form of a wallet secret. Byte fields are
// raw in memory and base64 in JSON (encoding/json's []byte encoding).
type EncryptedPrivateKey struct {
	KeyAlgorithm    KeyAlgorithm    `json:"keyAlgorithm"`
	CipherAlgorithm CipherAlgorithm `json:"cipherAlgorithm"`
	Ciphertext      []byte          `json:"ciphertext"`
}

// KeyAlgorithm describes how the symmetric key is derived from the password.
type KeyAlgorithm struct {
	Name       string `json:"name"`
	Salt       []byte `json:"salt"`
	Iterations int    `json:"iterations"`
	Hash       string `json:"hash"`
}

// CipherAlgorithm describes the authenticated cipher and its nonce.
type CipherAlgorithm struct {
	Name string `json:"name"`
	IV   []byte `json:"iv"`
}

// Marshal returns the JSON form stored in wallet files.
func (k *EncryptedPrivateKey) Marshal() ([]byte, error) {
	return json.Marshal(k)
}

// UnmarshalEncryptedPrivateKey parses the JSON form stored in wallet files.
func UnmarshalEncryptedPrivateKey(bz []byte) (*EncryptedPrivateKey, error) {
	encryptedKey := new(EncryptedPrivateKey)
	if err := json.Unmarshal(bz, encryptedKey); err != nil {
		return nil, ErrDecryption.Wrapf("malformed encrypted key: %v", err)
	}
	return encryptedKey, nil
}
