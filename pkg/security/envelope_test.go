package security

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/transfer"
)

func TestEncryptCBC_RoundTrip(t *testing.T) {
	key, err := NewTransactionKey()
	require.NoError(t, err)
	require.Len(t, key, TransactionKeySize)

	for _, size := range []int{0, 1, 15, 16, 17, 1000} {
		t.Run(fmt.Sprintf("%d bytes", size), func(t *testing.T) {
			plaintext := make([]byte, size)
			_, _ = rand.Read(plaintext)

			ct, err := EncryptCBC(key, plaintext)
			require.NoError(t, err)
			assert.Zero(t, len(ct)%16)
			assert.Greater(t, len(ct), size, "at least one padding byte")

			pt, err := DecryptCBC(key, ct)
			require.NoError(t, err)
			assert.Equal(t, plaintext, pt)
		})
	}
}

func TestDecryptCBC_Errors(t *testing.T) {
	key, _ := NewTransactionKey()

	_, err := DecryptCBC(key, []byte("short"))
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = DecryptCBC(key[:8], make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = EncryptCBC(nil, []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestWrapUnwrapKey(t *testing.T) {
	bankEnc, err := keys.Generate(keys.E002, 1024)
	require.NoError(t, err)
	other, err := keys.Generate(keys.E002, 1024)
	require.NoError(t, err)

	txKey, _ := NewTransactionKey()
	wrapped, err := WrapKey(bankEnc.PublicKey(), txKey)
	require.NoError(t, err)

	unwrapped, err := UnwrapKey(bankEnc.PrivateKey(), wrapped)
	require.NoError(t, err)
	assert.Equal(t, txKey, unwrapped)

	_, err = UnwrapKey(other.PrivateKey(), wrapped)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestEnvelope_SealOpen(t *testing.T) {
	userEnc, err := keys.Generate(keys.E002, 1024)
	require.NoError(t, err)

	const s = transfer.DefaultSegmentSize
	for _, size := range []int{0, 1, s - 1, s, s + 1, 10 * s} {
		t.Run(fmt.Sprintf("%d", size), func(t *testing.T) {
			payload := make([]byte, size)
			_, err := rand.Read(payload)
			require.NoError(t, err)

			sender, err := NewEnvelope()
			require.NoError(t, err)
			ct, err := sender.Seal(payload)
			require.NoError(t, err)
			assert.Zero(t, len(ct)%16)

			wrapped, err := sender.WrappedKey(userEnc.PublicKey())
			require.NoError(t, err)
			receiver, err := OpenEnvelope(userEnc.PrivateKey(), wrapped)
			require.NoError(t, err)
			assert.True(t, sender.Equal(receiver))

			var joined []byte
			for _, seg := range transfer.Split(ct, s) {
				joined = append(joined, seg...)
			}
			out, err := receiver.Open(joined)
			require.NoError(t, err)
			assert.Equal(t, len(payload), len(out))
			assert.True(t, bytes.Equal(payload, out))
		})
	}
}

func TestEnvelope_CompressesOrderData(t *testing.T) {
	sender, err := NewEnvelope()
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("<Ntry>booking</Ntry>"), 5000)
	ct, err := sender.Seal(payload)
	require.NoError(t, err)
	assert.Less(t, len(ct), len(payload))

	out, err := sender.Open(ct)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	other, err := NewEnvelope()
	require.NoError(t, err)
	_, err = other.Open(ct)
	assert.Error(t, err)
}

func TestSignOrderData(t *testing.T) {
	data := []byte("<Document>payment</Document>")

	for _, v := range []keys.Version{keys.A005, keys.A006} {
		t.Run(string(v), func(t *testing.T) {
			k, err := keys.Generate(v, 1024)
			require.NoError(t, err)

			sig, err := SignOrderData(k, data)
			require.NoError(t, err)
			assert.NoError(t, VerifyOrderData(k.PublicKey(), v, data, sig))
			assert.Error(t, VerifyOrderData(k.PublicKey(), v, []byte("tampered"), sig))
		})
	}

	x002, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)
	_, err = SignOrderData(x002, data)
	assert.Error(t, err)
	_, err = SignOrderData(x002.PublicOnly(), data)
	assert.Error(t, err)
}
