package security

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
)

var pssOptions = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}

// SignOrderData computes the electronic signature of order data with the
// subscriber's A005 or A006 key.
func SignOrderData(k *keys.Key, data []byte) ([]byte, error) {
	if k == nil || !k.HasPrivate() {
		return nil, fmt.Errorf("signature private key is required")
	}
	digest := sha256.Sum256(data)

	var (
		sig []byte
		err error
	)
	switch k.Version() {
	case keys.A005:
		sig, err = rsa.SignPKCS1v15(rand.Reader, k.PrivateKey(), crypto.SHA256, digest[:])
	case keys.A006:
		sig, err = rsa.SignPSS(rand.Reader, k.PrivateKey(), crypto.SHA256, digest[:], pssOptions)
	default:
		return nil, fmt.Errorf("key version %s cannot sign order data", k.Version())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sign order data: %w", err)
	}
	return sig, nil
}

// VerifyOrderData checks an electronic signature against the signer's public key.
func VerifyOrderData(pub *rsa.PublicKey, version keys.Version, data, sig []byte) error {
	digest := sha256.Sum256(data)
	switch version {
	case keys.A005:
		return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig)
	case keys.A006:
		return rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, pssOptions)
	default:
		return fmt.Errorf("key version %s cannot verify order data", version)
	}
}
