package keys

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// Digest computes the canonical EBICS digest of an RSA public key.
func Digest(pub *rsa.PublicKey) []byte {
	sum := sha256.Sum256([]byte(digestInput(pub)))
	return sum[:]
}

func digestInput(pub *rsa.PublicKey) string {
	// big.Int.Text never emits leading zeros
	exp := big.NewInt(int64(pub.E)).Text(16)
	mod := pub.N.Text(16)
	return strings.ToLower(exp + " " + mod)
}

// FormatDigest renders a digest for the initialisation letters: uppercase
// hex pairs separated by blanks, 16 bytes per line.
func FormatDigest(digest []byte) string {
	var b strings.Builder
	for i, c := range digest {
		if i > 0 {
			if i%16 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
	}
	return b.String()
}
