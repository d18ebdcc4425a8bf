package message

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// newDocument creates an EBICS H004 document with the given root element.
func newDocument(rootTag string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("xmlns", NamespaceH004)
	root.CreateAttr("xmlns:ds", NamespaceDS)
	root.CreateAttr("Version", ProtocolVersion)
	root.CreateAttr("Revision", ProtocolRevision)
	return doc, root
}

func writeStatic(header *etree.Element, h StaticHeader, withNonce bool) *etree.Element {
	static := header.CreateElement("static")
	static.CreateElement("HostID").SetText(h.HostID)
	if withNonce {
		static.CreateElement("Nonce").SetText(EncodeHex(h.Nonce))
		static.CreateElement("Timestamp").SetText(formatTimestamp(h.Timestamp))
	}
	static.CreateElement("PartnerID").SetText(h.PartnerID)
	static.CreateElement("UserID").SetText(h.UserID)
	if h.Product != nil {
		product := static.CreateElement("Product")
		if h.Product.Language != "" {
			product.CreateAttr("Language", h.Product.Language)
		}
		product.SetText(h.Product.Name)
	}
	details := static.CreateElement("OrderDetails")
	details.CreateElement("OrderType").SetText(h.OrderType.Code())
	details.CreateElement("OrderAttribute").SetText(string(h.OrderAttribute))
	return static
}

func writeBankDigests(static *etree.Element, d *BankDigests) {
	digests := static.CreateElement("BankPubKeyDigests")
	auth := digests.CreateElement("Authentication")
	auth.CreateAttr("Version", "X002")
	auth.CreateAttr("Algorithm", AlgorithmSHA256)
	auth.SetText(base64.StdEncoding.EncodeToString(d.Authentication))
	enc := digests.CreateElement("Encryption")
	enc.CreateAttr("Version", "E002")
	enc.CreateAttr("Algorithm", AlgorithmSHA256)
	enc.SetText(base64.StdEncoding.EncodeToString(d.Encryption))
}

func securityMedium(h StaticHeader) string {
	if h.SecurityMedium == "" {
		return SecurityMediumDefault
	}
	return h.SecurityMedium
}

// UnsecuredRequest builds an ebicsUnsecuredRequest (INI, HIA) carrying
// compressed, unencrypted order data.
func UnsecuredRequest(h StaticHeader, compressedOrderData []byte) *etree.Document {
	doc, root := newDocument(RootUnsecuredRequest)
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	static := writeStatic(header, h, false)
	static.CreateElement("SecurityMedium").SetText(securityMedium(h))
	header.CreateElement("mutable")

	body := root.CreateElement("body")
	body.CreateElement("DataTransfer").CreateElement("OrderData").
		SetText(base64.StdEncoding.EncodeToString(compressedOrderData))
	return doc
}

// NoPubKeyDigestsRequest builds the HPB request. It is authenticated but
// cannot pin bank keys yet.
func NoPubKeyDigestsRequest(h StaticHeader) *etree.Document {
	doc, root := newDocument(RootNoPubKeyDigestsRequest)
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	static := writeStatic(header, h, true)
	static.CreateElement("SecurityMedium").SetText(securityMedium(h))
	header.CreateElement("mutable")
	root.CreateElement("body")
	return doc
}

func initialisationHeader(root *etree.Element, h StaticHeader) {
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	static := writeStatic(header, h, true)
	h.OrderParams.render(static.SelectElement("OrderDetails"), h.OrderType)
	if h.BankDigests != nil {
		writeBankDigests(static, h.BankDigests)
	}
	static.CreateElement("SecurityMedium").SetText(securityMedium(h))
	if h.NumSegments > 0 {
		static.CreateElement("NumSegments").SetText(strconv.Itoa(h.NumSegments))
	}
	header.CreateElement("mutable").CreateElement("TransactionPhase").SetText(string(PhaseInitialisation))
}

func transactionHeader(root *etree.Element, hostID string, transactionID []byte, phase Phase) *etree.Element {
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	static := header.CreateElement("static")
	static.CreateElement("HostID").SetText(hostID)
	static.CreateElement("TransactionID").SetText(EncodeHex(transactionID))
	mutable := header.CreateElement("mutable")
	mutable.CreateElement("TransactionPhase").SetText(string(phase))
	return mutable
}

// UploadInit is the body of an upload initialisation.
type UploadInit struct {
	// EncryptionDigest is the digest of the bank E002 key used to wrap
	// the transaction key.
	EncryptionDigest []byte
	// TransactionKey is the wrapped transaction key.
	TransactionKey []byte
	// SignatureData is the encrypted UserSignatureData document.
	SignatureData []byte
}

// UploadInitRequest builds the initialisation of an upload transaction.
// It carries the wrapped key and the signature; order data follows in
// transfer requests.
func UploadInitRequest(h StaticHeader, init UploadInit) *etree.Document {
	doc, root := newDocument(RootRequest)
	initialisationHeader(root, h)

	dt := root.CreateElement("body").CreateElement("DataTransfer")
	writeEncryptionInfo(dt, init.EncryptionDigest, init.TransactionKey)
	sig := dt.CreateElement("SignatureData")
	sig.CreateAttr("authenticate", "true")
	sig.SetText(base64.StdEncoding.EncodeToString(init.SignatureData))
	return doc
}

func writeEncryptionInfo(parent *etree.Element, digest, wrappedKey []byte) {
	info := parent.CreateElement("DataEncryptionInfo")
	info.CreateAttr("authenticate", "true")
	epkd := info.CreateElement("EncryptionPubKeyDigest")
	epkd.CreateAttr("Version", "E002")
	epkd.CreateAttr("Algorithm", AlgorithmSHA256)
	epkd.SetText(base64.StdEncoding.EncodeToString(digest))
	info.CreateElement("TransactionKey").SetText(base64.StdEncoding.EncodeToString(wrappedKey))
}

// UploadTransferRequest builds the request carrying one upload segment.
func UploadTransferRequest(hostID string, transactionID []byte, segment int, last bool, data []byte) *etree.Document {
	doc, root := newDocument(RootRequest)
	mutable := transactionHeader(root, hostID, transactionID, PhaseTransfer)
	writeSegmentNumber(mutable, segment, last)

	root.CreateElement("body").CreateElement("DataTransfer").CreateElement("OrderData").
		SetText(base64.StdEncoding.EncodeToString(data))
	return doc
}

// DownloadInitRequest builds the initialisation of a download transaction.
func DownloadInitRequest(h StaticHeader) *etree.Document {
	doc, root := newDocument(RootRequest)
	h.NumSegments = 0
	initialisationHeader(root, h)
	root.CreateElement("body")
	return doc
}

// DownloadTransferRequest requests one download segment.
func DownloadTransferRequest(hostID string, transactionID []byte, segment int, last bool) *etree.Document {
	doc, root := newDocument(RootRequest)
	mutable := transactionHeader(root, hostID, transactionID, PhaseTransfer)
	writeSegmentNumber(mutable, segment, last)
	root.CreateElement("body")
	return doc
}

// ReceiptRequest acknowledges a download. Code 0 is a positive receipt.
func ReceiptRequest(hostID string, transactionID []byte, code int) *etree.Document {
	doc, root := newDocument(RootRequest)
	transactionHeader(root, hostID, transactionID, PhaseReceipt)
	receipt := root.CreateElement("body").CreateElement("TransferReceipt")
	receipt.CreateAttr("authenticate", "true")
	receipt.CreateElement("ReceiptCode").SetText(strconv.Itoa(code))
	return doc
}

func writeSegmentNumber(mutable *etree.Element, segment int, last bool) {
	sn := mutable.CreateElement("SegmentNumber")
	sn.CreateAttr("lastSegment", strconv.FormatBool(last))
	sn.SetText(strconv.Itoa(segment))
}

// HEVRequest asks a bank for the protocol versions it supports.
func HEVRequest(hostID string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootHEVRequest)
	root.CreateAttr("xmlns", NamespaceH000)
	root.CreateElement("HostID").SetText(hostID)
	return doc
}

// Marshal serializes a document without indentation; whitespace would
// change the canonical form of signed elements.
func Marshal(doc *etree.Document) ([]byte, error) {
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// Parse reads an XML document.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("no root element found")
	}
	return doc, nil
}
