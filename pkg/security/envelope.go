package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/sirosfoundation/go-ebics/pkg/compression"
)

// TransactionKeySize is the length of the AES-128 transaction key.
const TransactionKeySize = 16

var (
	// ErrDecrypt is returned when ciphertext cannot be decrypted or unpadded.
	ErrDecrypt = errors.New("decryption failed")
	// ErrInvalidKey is returned for transaction keys of the wrong length.
	ErrInvalidKey = errors.New("invalid transaction key")
)

// NewTransactionKey returns a fresh random transaction key.
func NewTransactionKey() ([]byte, error) {
	key := make([]byte, TransactionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate transaction key: %w", err)
	}
	return key, nil
}

// EncryptCBC encrypts plaintext with AES-CBC, a zero IV and ISO 10126
// padding. At least one padding byte is always added.
func EncryptCBC(key, plaintext []byte) ([]byte, error) {
	if len(key) != TransactionKeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+padLen)
	copy(padded, plaintext)
	if _, err := rand.Read(padded[len(plaintext) : len(padded)-1]); err != nil {
		return nil, fmt.Errorf("failed to generate padding: %w", err)
	}
	padded[len(padded)-1] = byte(padLen)

	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)
	return padded, nil
}

// DecryptCBC reverses EncryptCBC.
func DecryptCBC(key, ciphertext []byte) ([]byte, error) {
	if len(key) != TransactionKeySize {
		return nil, ErrInvalidKey
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrDecrypt, len(ciphertext))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, len(ciphertext))
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)

	padLen := int(out[len(out)-1])
	if padLen == 0 || padLen > aes.BlockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecrypt)
	}
	return out[:len(out)-padLen], nil
}

// WrapKey encrypts a transaction key for the bank (E002, RSAES-PKCS1-v1_5).
func WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error) {
	if pub == nil {
		return nil, fmt.Errorf("encryption public key is required")
	}
	wrapped, err := rsa.EncryptPKCS1v15(rand.Reader, pub, key)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap transaction key: %w", err)
	}
	return wrapped, nil
}

// UnwrapKey decrypts a transaction key with the subscriber's E002 key.
func UnwrapKey(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("encryption private key is required")
	}
	key, err := rsa.DecryptPKCS1v15(nil, priv, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction key: %v", ErrDecrypt, err)
	}
	if len(key) != TransactionKeySize {
		return nil, fmt.Errorf("%w: transaction key has %d bytes", ErrInvalidKey, len(key))
	}
	return key, nil
}

// Envelope protects the payloads of one transaction with a single
// transaction key.
type Envelope struct {
	key        []byte
	compressor *compression.Compressor
}

// NewEnvelope creates an envelope with a fresh transaction key.
func NewEnvelope() (*Envelope, error) {
	key, err := NewTransactionKey()
	if err != nil {
		return nil, err
	}
	return &Envelope{key: key, compressor: compression.NewCompressor()}, nil
}

// OpenEnvelope recovers the envelope of a download from the wrapped
// transaction key sent by the bank.
func OpenEnvelope(priv *rsa.PrivateKey, wrappedKey []byte) (*Envelope, error) {
	key, err := UnwrapKey(priv, wrappedKey)
	if err != nil {
		return nil, err
	}
	return &Envelope{key: key, compressor: compression.NewCompressor()}, nil
}

// Seal compresses and encrypts data.
func (e *Envelope) Seal(data []byte) ([]byte, error) {
	compressed, err := e.compressor.Compress(data)
	if err != nil {
		return nil, err
	}
	return EncryptCBC(e.key, compressed)
}

// Open decrypts and decompresses ciphertext produced by Seal.
func (e *Envelope) Open(ciphertext []byte) ([]byte, error) {
	compressed, err := DecryptCBC(e.key, ciphertext)
	if err != nil {
		return nil, err
	}
	data, err := e.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return data, nil
}

// WrappedKey returns the transaction key encrypted for the bank.
func (e *Envelope) WrappedKey(bankEncryption *rsa.PublicKey) ([]byte, error) {
	return WrapKey(bankEncryption, e.key)
}

// Equal reports whether both envelopes use the same transaction key.
func (e *Envelope) Equal(other *Envelope) bool {
	return other != nil && bytes.Equal(e.key, other.key)
}
