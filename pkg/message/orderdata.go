package message

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

// PubKeyInfo is a public key as exchanged in key management order data.
type PubKeyInfo struct {
	Version   keys.Version
	Modulus   []byte
	Exponent  []byte
	TimeStamp time.Time
}

// PubKeyInfoFrom extracts the exchange form of k.
func PubKeyInfoFrom(k *keys.Key) PubKeyInfo {
	return PubKeyInfo{
		Version:   k.Version(),
		Modulus:   k.Modulus(),
		Exponent:  k.Exponent(),
		TimeStamp: k.Created(),
	}
}

// Key rebuilds a public-only key.
func (p PubKeyInfo) Key() (*keys.Key, error) {
	pub, err := keys.PublicKeyFromComponents(p.Modulus, p.Exponent)
	if err != nil {
		return nil, fmt.Errorf("invalid %s key: %w", p.Version, err)
	}
	return keys.New(p.Version, pub, nil, p.TimeStamp)
}

func writePubKeyInfo(parent *etree.Element, tag, versionTag string, info PubKeyInfo) {
	elem := parent.CreateElement(tag)
	value := elem.CreateElement("PubKeyValue")
	rsaValue := value.CreateElement("ds:RSAKeyValue")
	rsaValue.CreateElement("ds:Modulus").SetText(base64.StdEncoding.EncodeToString(info.Modulus))
	rsaValue.CreateElement("ds:Exponent").SetText(base64.StdEncoding.EncodeToString(info.Exponent))
	if !info.TimeStamp.IsZero() {
		value.CreateElement("TimeStamp").SetText(formatTimestamp(info.TimeStamp))
	}
	elem.CreateElement(versionTag).SetText(string(info.Version))
}

func readPubKeyInfo(parent *etree.Element, tag, versionTag string) (PubKeyInfo, error) {
	var info PubKeyInfo
	elem := parent.SelectElement(tag)
	if elem == nil {
		return info, fmt.Errorf("%s not found", tag)
	}
	version, err := keys.ParseVersion(strings.TrimSpace(childText(elem, versionTag)))
	if err != nil {
		return info, err
	}
	info.Version = version

	rsaValue := elem.FindElement("./PubKeyValue/RSAKeyValue")
	if rsaValue == nil {
		return info, fmt.Errorf("%s: RSAKeyValue not found", tag)
	}
	if info.Modulus, err = decodeBase64(childText(rsaValue, "Modulus")); err != nil {
		return info, fmt.Errorf("%s: invalid modulus: %w", tag, err)
	}
	if info.Exponent, err = decodeBase64(childText(rsaValue, "Exponent")); err != nil {
		return info, fmt.Errorf("%s: invalid exponent: %w", tag, err)
	}
	if ts := childText(elem.SelectElement("PubKeyValue"), "TimeStamp"); ts != "" {
		if info.TimeStamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return info, fmt.Errorf("%s: invalid timestamp: %w", tag, err)
		}
	}
	return info, nil
}

func newOrderDataDocument(rootTag, namespace string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("xmlns", namespace)
	root.CreateAttr("xmlns:ds", NamespaceDS)
	return doc, root
}

// SignaturePubKeyOrderData builds the INI order data.
func SignaturePubKeyOrderData(signature PubKeyInfo, partnerID, userID string) *etree.Document {
	doc, root := newOrderDataDocument(RootSignaturePubKeyOrderData, NamespaceS001)
	writePubKeyInfo(root, "SignaturePubKeyInfo", "SignatureVersion", signature)
	root.CreateElement("PartnerID").SetText(partnerID)
	root.CreateElement("UserID").SetText(userID)
	return doc
}

// HIARequestOrderData builds the HIA order data.
func HIARequestOrderData(authentication, encryption PubKeyInfo, partnerID, userID string) *etree.Document {
	doc, root := newOrderDataDocument(RootHIARequestOrderData, NamespaceH004)
	writePubKeyInfo(root, "AuthenticationPubKeyInfo", "AuthenticationVersion", authentication)
	writePubKeyInfo(root, "EncryptionPubKeyInfo", "EncryptionVersion", encryption)
	root.CreateElement("PartnerID").SetText(partnerID)
	root.CreateElement("UserID").SetText(userID)
	return doc
}

// HPBResponseOrderData builds the order data a bank returns for HPB.
func HPBResponseOrderData(authentication, encryption PubKeyInfo, hostID string) *etree.Document {
	doc, root := newOrderDataDocument(RootHPBResponseOrderData, NamespaceH004)
	writePubKeyInfo(root, "AuthenticationPubKeyInfo", "AuthenticationVersion", authentication)
	writePubKeyInfo(root, "EncryptionPubKeyInfo", "EncryptionVersion", encryption)
	root.CreateElement("HostID").SetText(hostID)
	return doc
}

// UserSignatureData wraps an electronic signature value.
func UserSignatureData(version keys.Version, signature []byte, partnerID, userID string) *etree.Document {
	doc, root := newOrderDataDocument(RootUserSignatureData, NamespaceS001)
	osd := root.CreateElement("OrderSignatureData")
	osd.CreateElement("SignatureVersion").SetText(string(version))
	osd.CreateElement("SignatureValue").SetText(base64.StdEncoding.EncodeToString(signature))
	osd.CreateElement("PartnerID").SetText(partnerID)
	osd.CreateElement("UserID").SetText(userID)
	return doc
}

// HAAResponseOrderData builds the order data a bank returns for HAA.
func HAAResponseOrderData(types []ordertype.OrderType) *etree.Document {
	doc, root := newOrderDataDocument(RootHAAResponseOrderData, NamespaceH004)
	codes := make([]string, len(types))
	for i, t := range types {
		codes[i] = t.Code()
	}
	root.CreateElement("OrderTypes").SetText(strings.Join(codes, " "))
	return doc
}

// SignaturePubKey is parsed INI order data.
type SignaturePubKey struct {
	Signature PubKeyInfo
	PartnerID string
	UserID    string
}

// ParseSignaturePubKeyOrderData parses INI order data.
func ParseSignaturePubKeyOrderData(data []byte) (*SignaturePubKey, error) {
	root, err := parseRoot(data, RootSignaturePubKeyOrderData)
	if err != nil {
		return nil, err
	}
	info, err := readPubKeyInfo(root, "SignaturePubKeyInfo", "SignatureVersion")
	if err != nil {
		return nil, err
	}
	return &SignaturePubKey{
		Signature: info,
		PartnerID: childText(root, "PartnerID"),
		UserID:    childText(root, "UserID"),
	}, nil
}

// AuthEncPubKeys is parsed HIA request or HPB response order data.
type AuthEncPubKeys struct {
	Authentication PubKeyInfo
	Encryption     PubKeyInfo
	PartnerID      string
	UserID         string
	HostID         string
}

// ParseHIARequestOrderData parses HIA order data.
func ParseHIARequestOrderData(data []byte) (*AuthEncPubKeys, error) {
	return parseAuthEnc(data, RootHIARequestOrderData)
}

// ParseHPBResponseOrderData parses the bank keys returned for HPB.
func ParseHPBResponseOrderData(data []byte) (*AuthEncPubKeys, error) {
	return parseAuthEnc(data, RootHPBResponseOrderData)
}

func parseAuthEnc(data []byte, rootTag string) (*AuthEncPubKeys, error) {
	root, err := parseRoot(data, rootTag)
	if err != nil {
		return nil, err
	}
	auth, err := readPubKeyInfo(root, "AuthenticationPubKeyInfo", "AuthenticationVersion")
	if err != nil {
		return nil, err
	}
	enc, err := readPubKeyInfo(root, "EncryptionPubKeyInfo", "EncryptionVersion")
	if err != nil {
		return nil, err
	}
	return &AuthEncPubKeys{
		Authentication: auth,
		Encryption:     enc,
		PartnerID:      childText(root, "PartnerID"),
		UserID:         childText(root, "UserID"),
		HostID:         childText(root, "HostID"),
	}, nil
}

// OrderSignature is a parsed UserSignatureData document.
type OrderSignature struct {
	Version   keys.Version
	Value     []byte
	PartnerID string
	UserID    string
}

// ParseUserSignatureData parses the first OrderSignatureData of a
// UserSignatureData document.
func ParseUserSignatureData(data []byte) (*OrderSignature, error) {
	root, err := parseRoot(data, RootUserSignatureData)
	if err != nil {
		return nil, err
	}
	osd := root.SelectElement("OrderSignatureData")
	if osd == nil {
		return nil, fmt.Errorf("OrderSignatureData not found")
	}
	version, err := keys.ParseVersion(childText(osd, "SignatureVersion"))
	if err != nil {
		return nil, err
	}
	value, err := decodeBase64(childText(osd, "SignatureValue"))
	if err != nil {
		return nil, fmt.Errorf("invalid signature value: %w", err)
	}
	return &OrderSignature{
		Version:   version,
		Value:     value,
		PartnerID: childText(osd, "PartnerID"),
		UserID:    childText(osd, "UserID"),
	}, nil
}

// ParseHAAResponseOrderData returns the order types a bank offers.
func ParseHAAResponseOrderData(data []byte) ([]ordertype.OrderType, error) {
	root, err := parseRoot(data, RootHAAResponseOrderData)
	if err != nil {
		return nil, err
	}
	return ordertype.ParseList(childText(root, "OrderTypes")), nil
}

func parseRoot(data []byte, rootTag string) (*etree.Element, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root.Tag != rootTag {
		return nil, fmt.Errorf("unexpected root element %s, want %s", root.Tag, rootTag)
	}
	return root, nil
}

// childText returns the trimmed text of the first child with the given tag.
func childText(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
}
