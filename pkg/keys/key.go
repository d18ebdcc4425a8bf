package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// DefaultBits is the RSA modulus length used for new subscriber keys.
const DefaultBits = 2048

// Usage tells what a key is used for.
type Usage int

const (
	// UsageSignature is the electronic signature of order data (A005/A006).
	UsageSignature Usage = iota
	// UsageAuthentication is the XML signature of requests (X002).
	UsageAuthentication
	// UsageEncryption is the wrapping of transaction keys (E002).
	UsageEncryption
)

func (u Usage) String() string {
	switch u {
	case UsageSignature:
		return "signature"
	case UsageAuthentication:
		return "authentication"
	case UsageEncryption:
		return "encryption"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

// Version is the EBICS key version tag.
type Version string

// Key versions supported for H004.
const (
	A005 Version = "A005"
	A006 Version = "A006"
	X002 Version = "X002"
	E002 Version = "E002"
)

// ErrUnknownVersion is returned for key version tags outside A005, A006, X002 and E002.
var ErrUnknownVersion = errors.New("unknown key version")

// ParseVersion parses an EBICS key version tag.
func ParseVersion(s string) (Version, error) {
	switch v := Version(s); v {
	case A005, A006, X002, E002:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

// Usage returns the usage fixed by the version tag.
func (v Version) Usage() Usage {
	switch v {
	case X002:
		return UsageAuthentication
	case E002:
		return UsageEncryption
	default:
		return UsageSignature
	}
}

// Key is an RSA key of a bank or subscriber.
//
// Keys are immutable; the digest always matches the public key.
type Key struct {
	version Version
	public  *rsa.PublicKey
	private *rsa.PrivateKey
	created time.Time
	digest  []byte
}

// New creates a key from its public part and an optional private part.
func New(version Version, public *rsa.PublicKey, private *rsa.PrivateKey, created time.Time) (*Key, error) {
	if _, err := ParseVersion(string(version)); err != nil {
		return nil, err
	}
	if public == nil {
		if private == nil {
			return nil, fmt.Errorf("public key is required")
		}
		public = &private.PublicKey
	}
	if private != nil && !private.PublicKey.Equal(public) {
		return nil, fmt.Errorf("private key does not match public key")
	}
	return &Key{
		version: version,
		public:  public,
		private: private,
		created: created.UTC(),
		digest:  Digest(public),
	}, nil
}

// Generate creates a fresh key pair for the given version.
func Generate(version Version, bits int) (*Key, error) {
	if bits <= 0 {
		bits = DefaultBits
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s key: %w", version, err)
	}
	return New(version, nil, priv, time.Now())
}

// Version returns the version tag.
func (k *Key) Version() Version { return k.version }

// Usage returns the usage implied by the version tag.
func (k *Key) Usage() Usage { return k.version.Usage() }

// PublicKey returns the RSA public key.
func (k *Key) PublicKey() *rsa.PublicKey { return k.public }

// PrivateKey returns the RSA private key, or nil for public-only keys.
func (k *Key) PrivateKey() *rsa.PrivateKey { return k.private }

// HasPrivate reports whether the private part is present.
func (k *Key) HasPrivate() bool { return k.private != nil }

// Created returns the creation time of the key.
func (k *Key) Created() time.Time { return k.created }

// Digest returns a copy of the canonical SHA-256 digest of the public key.
func (k *Key) Digest() []byte {
	d := make([]byte, len(k.digest))
	copy(d, k.digest)
	return d
}

// WithPublicKey returns a public-only copy of k carrying pub.
func (k *Key) WithPublicKey(pub *rsa.PublicKey, created time.Time) (*Key, error) {
	return New(k.version, pub, nil, created)
}

// PublicOnly drops the private part.
func (k *Key) PublicOnly() *Key {
	c := *k
	c.private = nil
	return &c
}

// Modulus returns the big-endian modulus without leading zeros.
func (k *Key) Modulus() []byte { return k.public.N.Bytes() }

// Exponent returns the big-endian public exponent.
func (k *Key) Exponent() []byte { return big.NewInt(int64(k.public.E)).Bytes() }

// PublicKeyFromComponents rebuilds an RSA public key from the unsigned
// big-endian modulus and exponent found in ds:RSAKeyValue.
func PublicKeyFromComponents(modulus, exponent []byte) (*rsa.PublicKey, error) {
	if len(modulus) == 0 || len(exponent) == 0 {
		return nil, fmt.Errorf("modulus and exponent are required")
	}
	e := new(big.Int).SetBytes(exponent)
	if !e.IsInt64() || e.Int64() < 3 || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("invalid public exponent")
	}
	n := new(big.Int).SetBytes(modulus)
	if n.BitLen() < 512 {
		return nil, fmt.Errorf("modulus too short: %d bits", n.BitLen())
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}
