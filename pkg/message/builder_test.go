package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

func testHeader(ot ordertype.OrderType, attr OrderAttribute) StaticHeader {
	return StaticHeader{
		HostID:         "EBIXHOST",
		PartnerID:      "PARTNER1",
		UserID:         "USER1",
		Product:        &Product{Name: "go-ebics", Language: "en"},
		OrderType:      ot,
		OrderAttribute: attr,
		BankDigests:    &BankDigests{Authentication: []byte{1, 2}, Encryption: []byte{3, 4}},
		Nonce:          []byte{0xab, 0xcd},
		Timestamp:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUnsecuredRequest(t *testing.T) {
	h := testHeader(ordertype.HIA, DZNNN)
	h.SecurityMedium = SecurityMediumUnknown
	doc := UnsecuredRequest(h, []byte("order"))

	root := doc.Root()
	assert.Equal(t, RootUnsecuredRequest, root.Tag)
	assert.Equal(t, NamespaceH004, root.NamespaceURI())
	assert.Equal(t, "H004", root.SelectAttrValue("Version", ""))
	assert.Equal(t, "1", root.SelectAttrValue("Revision", ""))

	static := root.FindElement("./header/static")
	require.NotNil(t, static)
	assert.Nil(t, static.SelectElement("Nonce"), "unsecured requests carry no nonce")
	assert.Equal(t, "HIA", static.FindElement("./OrderDetails/OrderType").Text())
	assert.Equal(t, "DZNNN", static.FindElement("./OrderDetails/OrderAttribute").Text())
	assert.Equal(t, "0000", static.SelectElement("SecurityMedium").Text())
	assert.Equal(t, "en", static.SelectElement("Product").SelectAttrValue("Language", ""))
	assert.Equal(t, "b3JkZXI=", root.FindElement("./body/DataTransfer/OrderData").Text())
}

func TestNoPubKeyDigestsRequest(t *testing.T) {
	doc := NoPubKeyDigestsRequest(testHeader(ordertype.HPB, DZHNN))
	static := doc.Root().FindElement("./header/static")
	require.NotNil(t, static)
	assert.Equal(t, "ABCD", static.SelectElement("Nonce").Text())
	assert.Equal(t, "2024-05-01T10:00:00.000Z", static.SelectElement("Timestamp").Text())
	assert.Nil(t, static.SelectElement("BankPubKeyDigests"))
	assert.Equal(t, SecurityMediumDefault, static.SelectElement("SecurityMedium").Text())
}

func TestUploadInitRequest(t *testing.T) {
	h := testHeader(ordertype.CCT, OZHNN)
	h.NumSegments = 3
	doc := UploadInitRequest(h, UploadInit{
		EncryptionDigest: []byte{3, 4},
		TransactionKey:   []byte("wrapped"),
		SignatureData:    []byte("sig"),
	})
	root := doc.Root()

	static := root.FindElement("./header/static")
	require.NotNil(t, static)
	names := []string{}
	for _, c := range static.ChildElements() {
		names = append(names, c.Tag)
	}
	assert.Equal(t, []string{"HostID", "Nonce", "Timestamp", "PartnerID", "UserID", "Product",
		"OrderDetails", "BankPubKeyDigests", "SecurityMedium", "NumSegments"}, names)
	assert.Equal(t, "3", static.SelectElement("NumSegments").Text())
	assert.NotNil(t, static.FindElement("./OrderDetails/StandardOrderParams"))
	assert.Equal(t, "X002", static.FindElement("./BankPubKeyDigests/Authentication").SelectAttrValue("Version", ""))
	assert.Equal(t, "Initialisation", root.FindElement("./header/mutable/TransactionPhase").Text())

	dt := root.FindElement("./body/DataTransfer")
	require.NotNil(t, dt)
	assert.Equal(t, "true", dt.SelectElement("DataEncryptionInfo").SelectAttrValue("authenticate", ""))
	assert.Equal(t, "true", dt.SelectElement("SignatureData").SelectAttrValue("authenticate", ""))
	assert.Nil(t, dt.SelectElement("OrderData"), "order data travels in transfer requests")
}

func TestOrderParams_FUL(t *testing.T) {
	h := testHeader(ordertype.FUL, OZHNN)
	h.OrderParams = &OrderParams{
		FileFormat:  "pain.001.001.03",
		CountryCode: "DE",
		Parameters:  map[string]string{"TEST": "TRUE", "EBCDIC": "FALSE"},
	}
	doc := UploadInitRequest(h, UploadInit{})
	params := doc.Root().FindElement("./header/static/OrderDetails/FULOrderParams")
	require.NotNil(t, params)

	children := params.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "EBCDIC", children[0].SelectElement("Name").Text())
	assert.Equal(t, "TEST", children[1].SelectElement("Name").Text())
	assert.Equal(t, "FileFormat", children[2].Tag)
	assert.Equal(t, "DE", children[2].SelectAttrValue("CountryCode", ""))
}

func TestDownloadInitRequest_DateRange(t *testing.T) {
	h := testHeader(ordertype.STA, DZHNN)
	h.NumSegments = 5
	h.OrderParams = &OrderParams{DateRange: &DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}}
	doc := DownloadInitRequest(h)
	static := doc.Root().FindElement("./header/static")
	require.NotNil(t, static)
	assert.Nil(t, static.SelectElement("NumSegments"))
	assert.Equal(t, "2024-01-01", static.FindElement("./OrderDetails/StandardOrderParams/DateRange/Start").Text())
	assert.Equal(t, "2024-01-31", static.FindElement("./OrderDetails/StandardOrderParams/DateRange/End").Text())
}

func TestTransferAndReceiptRequests(t *testing.T) {
	txID := []byte{0x01, 0xff}

	up := UploadTransferRequest("EBIXHOST", txID, 2, true, []byte("seg"))
	static := up.Root().FindElement("./header/static")
	require.NotNil(t, static)
	assert.Len(t, static.ChildElements(), 2)
	assert.Equal(t, "01FF", static.SelectElement("TransactionID").Text())
	sn := up.Root().FindElement("./header/mutable/SegmentNumber")
	require.NotNil(t, sn)
	assert.Equal(t, "2", sn.Text())
	assert.Equal(t, "true", sn.SelectAttrValue("lastSegment", ""))

	down := DownloadTransferRequest("EBIXHOST", txID, 2, false)
	assert.Equal(t, "false", down.Root().FindElement("./header/mutable/SegmentNumber").SelectAttrValue("lastSegment", ""))

	receipt := ReceiptRequest("EBIXHOST", txID, 0)
	assert.Equal(t, "Receipt", receipt.Root().FindElement("./header/mutable/TransactionPhase").Text())
	tr := receipt.Root().FindElement("./body/TransferReceipt")
	require.NotNil(t, tr)
	assert.Equal(t, "true", tr.SelectAttrValue("authenticate", ""))
	assert.Equal(t, "0", tr.SelectElement("ReceiptCode").Text())
}

func TestMarshalParse(t *testing.T) {
	data, err := Marshal(HEVRequest("EBIXHOST"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<?xml version="1.0" encoding="UTF-8"?>`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, NamespaceH000, doc.Root().NamespaceURI())

	_, err = Parse([]byte("<unclosed"))
	assert.Error(t, err)
}
