package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

func generate(t *testing.T, v keys.Version) *keys.Key {
	t.Helper()
	k, err := keys.Generate(v, 1024)
	require.NoError(t, err)
	return k
}

func TestSignaturePubKeyOrderData(t *testing.T) {
	sig := generate(t, keys.A006)
	data, err := Marshal(SignaturePubKeyOrderData(PubKeyInfoFrom(sig), "PARTNER1", "USER1"))
	require.NoError(t, err)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, NamespaceS001, doc.Root().NamespaceURI())

	parsed, err := ParseSignaturePubKeyOrderData(data)
	require.NoError(t, err)
	assert.Equal(t, "PARTNER1", parsed.PartnerID)
	assert.Equal(t, "USER1", parsed.UserID)

	k, err := parsed.Signature.Key()
	require.NoError(t, err)
	assert.Equal(t, keys.A006, k.Version())
	assert.Equal(t, sig.Digest(), k.Digest())
}

func TestHIAAndHPBOrderData(t *testing.T) {
	auth := generate(t, keys.X002)
	enc := generate(t, keys.E002)

	hia, err := Marshal(HIARequestOrderData(PubKeyInfoFrom(auth), PubKeyInfoFrom(enc), "PARTNER1", "USER1"))
	require.NoError(t, err)
	parsed, err := ParseHIARequestOrderData(hia)
	require.NoError(t, err)
	assert.Equal(t, keys.X002, parsed.Authentication.Version)
	assert.Equal(t, keys.E002, parsed.Encryption.Version)
	assert.Equal(t, "USER1", parsed.UserID)

	hpb, err := Marshal(HPBResponseOrderData(PubKeyInfoFrom(auth), PubKeyInfoFrom(enc), "EBIXHOST"))
	require.NoError(t, err)
	bank, err := ParseHPBResponseOrderData(hpb)
	require.NoError(t, err)
	assert.Equal(t, "EBIXHOST", bank.HostID)

	encKey, err := bank.Encryption.Key()
	require.NoError(t, err)
	assert.Equal(t, enc.Digest(), encKey.Digest())
	assert.False(t, encKey.HasPrivate())

	_, err = ParseHPBResponseOrderData(hia)
	assert.Error(t, err, "wrong root")
}

func TestUserSignatureData(t *testing.T) {
	data, err := Marshal(UserSignatureData(keys.A005, []byte("sigvalue"), "PARTNER1", "USER1"))
	require.NoError(t, err)

	sig, err := ParseUserSignatureData(data)
	require.NoError(t, err)
	assert.Equal(t, keys.A005, sig.Version)
	assert.Equal(t, []byte("sigvalue"), sig.Value)
	assert.Equal(t, "PARTNER1", sig.PartnerID)
}

func TestHAAResponseOrderData(t *testing.T) {
	data, err := Marshal(HAAResponseOrderData([]ordertype.OrderType{ordertype.STA, ordertype.Parse("ZZZ")}))
	require.NoError(t, err)

	types, err := ParseHAAResponseOrderData(data)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, ordertype.STA, types[0])
	assert.Equal(t, "ZZZ", types[1].Code())
	assert.False(t, types[1].Known())
}
