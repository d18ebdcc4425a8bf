package keys

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const sealFormatVersion = 1

// ErrWrongSecret is returned when a sealed key cannot be opened, either
// because the secret is wrong or the blob was modified.
var ErrWrongSecret = errors.New("wrong secret or corrupted key")

// SecretProvider supplies the secret protecting a subscriber's private keys.
//
// Implementations must be safe for concurrent use.
type SecretProvider interface {
	Secret(ctx context.Context, userID string) ([]byte, error)
}

// StaticSecret is a SecretProvider returning the same secret for every user.
type StaticSecret []byte

// Secret implements SecretProvider.
func (s StaticSecret) Secret(context.Context, string) ([]byte, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty secret")
	}
	return []byte(s), nil
}

// sealed is the JSON structure of a sealed private key.
type sealed struct {
	V       int       `json:"v"`
	Version Version   `json:"version"`
	Created time.Time `json:"created"`
	Salt    []byte    `json:"salt"`
	N       int       `json:"scrypt_N"`
	R       int       `json:"scrypt_r"`
	P       int       `json:"scrypt_p"`
	Cipher  []byte    `json:"cipher"`
}

// scrypt cost parameters for new blobs.
var scryptN, scryptR, scryptP = 1 << 15, 8, 1

// Upper bounds for the cost parameters Open accepts. scrypt needs about
// 128*N*r bytes, so the memory bound is 256 MiB.
const (
	maxScryptN      = 1 << 20
	maxScryptMemory = 256 << 20
	maxScryptP      = 16
)

// Seal encrypts the private part of k with the secret for userID.
// The user id is bound as additional data so a blob cannot be moved
// between users.
func Seal(ctx context.Context, provider SecretProvider, userID string, k *Key) ([]byte, error) {
	if !k.HasPrivate() {
		return nil, fmt.Errorf("key %s has no private part", k.version)
	}
	secret, err := provider.Secret(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}
	raw, err := x509.MarshalPKCS8PrivateKey(k.private)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := deriveAEAD(secret, salt[:], scryptN, scryptR, scryptP)
	if err != nil {
		return nil, err
	}
	// zero nonce: the key is unique per salt
	var nonce [chacha20poly1305.NonceSize]byte
	ct := aead.Seal(nil, nonce[:], raw, additionalData(userID, k.version))

	return json.Marshal(sealed{
		V:       sealFormatVersion,
		Version: k.version,
		Created: k.created,
		Salt:    salt[:],
		N:       scryptN,
		R:       scryptR,
		P:       scryptP,
		Cipher:  ct,
	})
}

// Open decrypts a blob produced by Seal.
func Open(ctx context.Context, provider SecretProvider, userID string, blob []byte) (*Key, error) {
	var s sealed
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("failed to decode sealed key: %w", err)
	}
	if s.V > sealFormatVersion {
		return nil, fmt.Errorf("unsupported sealed key version %d", s.V)
	}
	if !acceptableCost(s.N, s.R, s.P) {
		return nil, ErrWrongSecret
	}
	secret, err := provider.Secret(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}
	aead, err := deriveAEAD(secret, s.Salt, s.N, s.R, s.P)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	raw, err := aead.Open(nil, nonce[:], s.Cipher, additionalData(userID, s.Version))
	if err != nil {
		return nil, ErrWrongSecret
	}
	parsed, err := x509.ParsePKCS8PrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("sealed key is not an RSA key")
	}
	return New(s.Version, nil, priv, s.Created)
}

// acceptableCost reports whether stored scrypt parameters are within the
// bounds a blob written by Seal could carry.
func acceptableCost(n, r, p int) bool {
	if n < 2 || n > maxScryptN || n&(n-1) != 0 {
		return false
	}
	if r < 1 || p < 1 || p > maxScryptP {
		return false
	}
	return int64(n)*int64(r)*128 <= maxScryptMemory
}

func deriveAEAD(secret, salt []byte, n, r, p int) (cipher.AEAD, error) {
	key, err := scrypt.Key(secret, salt, n, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return chacha20poly1305.New(key)
}

func additionalData(userID string, v Version) []byte {
	return []byte(userID + "/" + string(v))
}
