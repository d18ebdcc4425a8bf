package security

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
)

func testRequest(t *testing.T) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	root := doc.CreateElement("ebicsRequest")
	root.CreateAttr("xmlns", "urn:org:ebics:H004")
	root.CreateAttr("xmlns:ds", NamespaceDS)
	root.CreateAttr("Version", "H004")
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	header.CreateElement("static").CreateElement("HostID").SetText("EBIXHOST")
	body := root.CreateElement("body")
	dt := body.CreateElement("DataTransfer")
	dt.CreateElement("DataEncryptionInfo").CreateAttr("authenticate", "true")
	dt.CreateElement("OrderData").SetText("AAAA")
	return doc
}

func TestSignAuth_VerifyAfterSerialization(t *testing.T) {
	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)

	doc := testRequest(t)
	require.NoError(t, SignAuth(doc, auth))

	// AuthSignature follows the header
	children := doc.Root().ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "AuthSignature", children[1].Tag)

	data, err := doc.WriteToBytes()
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))
	assert.NoError(t, VerifyAuth(parsed, auth.PublicKey()))
}

func TestVerifyAuth_DetectsTampering(t *testing.T) {
	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)
	other, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)

	doc := testRequest(t)
	require.NoError(t, SignAuth(doc, auth))

	assert.ErrorIs(t, VerifyAuth(doc, other.PublicKey()), ErrAuthSignature)

	doc.Root().FindElement("./header/static/HostID").SetText("OTHERHOST")
	assert.ErrorIs(t, VerifyAuth(doc, auth.PublicKey()), ErrAuthSignature)
}

func TestVerifyAuth_UnauthenticatedContentIsNotCovered(t *testing.T) {
	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)

	doc := testRequest(t)
	require.NoError(t, SignAuth(doc, auth))

	doc.Root().FindElement("./body/DataTransfer/OrderData").SetText("BBBB")
	assert.NoError(t, VerifyAuth(doc, auth.PublicKey()))
}

func TestSignAuth_Errors(t *testing.T) {
	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)

	assert.Error(t, SignAuth(testRequest(t), auth.PublicOnly()))

	doc := testRequest(t)
	require.NoError(t, SignAuth(doc, auth))
	assert.Error(t, SignAuth(doc, auth), "signing twice")

	assert.ErrorIs(t, VerifyAuth(testRequest(t), auth.PublicKey()), ErrNoAuthSignature)
}

// uploadInitRequest is an upload initialisation request as a bank receives
// it. The expected digest was computed with xmllint --exc-c14n over the
// three authenticated elements.
const uploadInitRequest = `<?xml version="1.0" encoding="UTF-8"?>
<ebicsRequest xmlns="urn:org:ebics:H004" xmlns:ds="http://www.w3.org/2000/09/xmldsig#" Version="H004" Revision="1"><header authenticate="true"><static><HostID>EBIXHOST</HostID><Nonce>0123456789ABCDEF0123456789ABCDEF</Nonce><Timestamp>2024-01-02T03:04:05.000Z</Timestamp><PartnerID>PARTNER1</PartnerID><UserID>USER1</UserID><OrderDetails><OrderType>CCT</OrderType><OrderAttribute>OZHNN</OrderAttribute><StandardOrderParams/></OrderDetails><BankPubKeyDigests><Authentication Version="X002" Algorithm="http://www.w3.org/2001/04/xmlenc#sha256">AAAA</Authentication><Encryption Version="E002" Algorithm="http://www.w3.org/2001/04/xmlenc#sha256">BBBB</Encryption></BankPubKeyDigests><SecurityMedium>0000</SecurityMedium><NumSegments>1</NumSegments></static><mutable><TransactionPhase>Initialisation</TransactionPhase></mutable></header><body><DataTransfer><DataEncryptionInfo authenticate="true"><EncryptionPubKeyDigest Version="E002" Algorithm="http://www.w3.org/2001/04/xmlenc#sha256">BBBB</EncryptionPubKeyDigest><TransactionKey>CCCC</TransactionKey></DataEncryptionInfo><SignatureData authenticate="true">DDDD</SignatureData></DataTransfer></body></ebicsRequest>`

const uploadInitDigest = "RSWriqIMj9U6Z3VnJbDED+yigEcL9Nivv4210lRWm84="

func TestCanonicalize_InheritsDefaultNamespace(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(uploadInitRequest))

	header, err := canonicalize(doc.Root().SelectElement("header"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(header, `<header xmlns="urn:org:ebics:H004" authenticate="true"><static><HostID>EBIXHOST</HostID>`))
	assert.Contains(t, header, `<StandardOrderParams></StandardOrderParams>`)
	assert.Contains(t, header, `<Authentication Algorithm="http://www.w3.org/2001/04/xmlenc#sha256" Version="X002">`)
	assert.NotContains(t, header, "xmlns:ds")

	sd, err := canonicalize(doc.Root().FindElement("./body/DataTransfer/SignatureData"))
	require.NoError(t, err)
	assert.Equal(t, `<SignatureData xmlns="urn:org:ebics:H004" authenticate="true">DDDD</SignatureData>`, sd)
}

func TestAuthenticatedDigest_KnownAnswer(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(uploadInitRequest))

	digest, err := authenticatedDigest(doc.Root())
	require.NoError(t, err)
	assert.Equal(t, uploadInitDigest, base64.StdEncoding.EncodeToString(digest))

	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)
	require.NoError(t, SignAuth(doc, auth))
	assert.Equal(t, uploadInitDigest, doc.Root().FindElement("./AuthSignature/SignedInfo/Reference/DigestValue").Text())

	signedInfo, err := canonicalize(doc.Root().FindElement("./AuthSignature/SignedInfo"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signedInfo, `<ds:SignedInfo xmlns:ds="http://www.w3.org/2000/09/xmldsig#"><ds:CanonicalizationMethod`))
	assert.NotContains(t, signedInfo, "urn:org:ebics:H004")
}
