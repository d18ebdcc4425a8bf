package security

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/moov-io/signedxml"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
)

// XML signature identifiers used by the X002 authentication signature.
const (
	NamespaceDS            = "http://www.w3.org/2000/09/xmldsig#"
	AlgorithmC14N          = "http://www.w3.org/2001/10/xml-exc-c14n#"
	AlgorithmRSASHA256     = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	AlgorithmSHA256        = "http://www.w3.org/2001/04/xmlenc#sha256"
	AuthenticatedReference = "#xpointer(//*[@authenticate='true'])"
)

var (
	// ErrNoAuthSignature is returned when a document carries no AuthSignature.
	ErrNoAuthSignature = errors.New("AuthSignature not found")
	// ErrAuthSignature is returned when the authentication signature does not verify.
	ErrAuthSignature = errors.New("authentication signature invalid")
)

// SignAuth adds the X002 AuthSignature to an EBICS request. The signature
// is inserted right after the header element and covers every element
// carrying authenticate="true".
func SignAuth(doc *etree.Document, k *keys.Key) error {
	if k == nil || !k.HasPrivate() {
		return fmt.Errorf("authentication private key is required")
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("no root element found")
	}
	header := root.SelectElement("header")
	if header == nil {
		return fmt.Errorf("header element not found")
	}
	if root.SelectElement("AuthSignature") != nil {
		return fmt.Errorf("document is already signed")
	}

	digest, err := authenticatedDigest(root)
	if err != nil {
		return err
	}

	sig := etree.NewElement("AuthSignature")
	signedInfo := sig.CreateElement("ds:SignedInfo")
	signedInfo.CreateAttr("xmlns:ds", NamespaceDS)
	signedInfo.CreateElement("ds:CanonicalizationMethod").CreateAttr("Algorithm", AlgorithmC14N)
	signedInfo.CreateElement("ds:SignatureMethod").CreateAttr("Algorithm", AlgorithmRSASHA256)
	ref := signedInfo.CreateElement("ds:Reference")
	ref.CreateAttr("URI", AuthenticatedReference)
	ref.CreateElement("ds:Transforms").CreateElement("ds:Transform").CreateAttr("Algorithm", AlgorithmC14N)
	ref.CreateElement("ds:DigestMethod").CreateAttr("Algorithm", AlgorithmSHA256)
	ref.CreateElement("ds:DigestValue").SetText(base64.StdEncoding.EncodeToString(digest))

	// SignedInfo is canonicalised in place so signer and verifier see the
	// same ancestors.
	root.InsertChildAt(header.Index()+1, sig)

	canonical, err := canonicalize(signedInfo)
	if err != nil {
		return fmt.Errorf("failed to canonicalize SignedInfo: %w", err)
	}
	hashed := sha256.Sum256([]byte(canonical))
	value, err := rsa.SignPKCS1v15(rand.Reader, k.PrivateKey(), crypto.SHA256, hashed[:])
	if err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	sig.CreateElement("ds:SignatureValue").SetText(base64.StdEncoding.EncodeToString(value))
	return nil
}

// VerifyAuth checks the AuthSignature of an EBICS document against the
// X002 public key of its sender.
func VerifyAuth(doc *etree.Document, pub *rsa.PublicKey) error {
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("no root element found")
	}
	sig := root.SelectElement("AuthSignature")
	if sig == nil {
		return ErrNoAuthSignature
	}
	signedInfo := sig.SelectElement("SignedInfo")
	if signedInfo == nil {
		return fmt.Errorf("%w: SignedInfo missing", ErrAuthSignature)
	}
	digestValue := signedInfo.FindElement("./Reference/DigestValue")
	sigValue := sig.SelectElement("SignatureValue")
	if digestValue == nil || sigValue == nil {
		return fmt.Errorf("%w: DigestValue or SignatureValue missing", ErrAuthSignature)
	}

	want, err := decodeBase64(digestValue.Text())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthSignature, err)
	}
	got, err := authenticatedDigest(root)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("%w: digest mismatch", ErrAuthSignature)
	}

	canonical, err := canonicalize(signedInfo)
	if err != nil {
		return fmt.Errorf("failed to canonicalize SignedInfo: %w", err)
	}
	value, err := decodeBase64(sigValue.Text())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthSignature, err)
	}
	hashed := sha256.Sum256([]byte(canonical))
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, hashed[:], value); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthSignature, err)
	}
	return nil
}

// authenticatedDigest hashes the canonical forms of all elements marked
// authenticate="true", in document order.
func authenticatedDigest(root *etree.Element) ([]byte, error) {
	elems := authenticatedElements(root, nil)
	if len(elems) == 0 {
		return nil, fmt.Errorf("no authenticated elements found")
	}
	h := sha256.New()
	for _, elem := range elems {
		canonical, err := canonicalize(elem)
		if err != nil {
			return nil, fmt.Errorf("failed to canonicalize %s: %w", elem.Tag, err)
		}
		h.Write([]byte(canonical))
	}
	return h.Sum(nil), nil
}

func authenticatedElements(elem *etree.Element, acc []*etree.Element) []*etree.Element {
	if elem.SelectAttrValue("authenticate", "") == "true" {
		// nested elements are covered by the enclosing one
		return append(acc, elem)
	}
	for _, child := range elem.ChildElements() {
		acc = authenticatedElements(child, acc)
	}
	return acc
}

// canonicalize renders elem in exclusive canonical form as it appears in
// its document. The canonicalizer works on a detached copy, so the copy
// gets the namespace declarations elem inherits from its ancestors.
func canonicalize(elem *etree.Element) (string, error) {
	detached := elem.Copy()
	detached.Attr = append(detached.Attr, inheritedNamespaces(elem)...)
	c14n := signedxml.ExclusiveCanonicalization{WithComments: false}
	return c14n.ProcessElement(detached, "")
}

// inheritedNamespaces returns the namespace declarations in scope at elem
// that elem does not declare itself. The nearest declaration wins.
func inheritedNamespaces(elem *etree.Element) []etree.Attr {
	declared := make(map[string]bool)
	for _, attr := range elem.Attr {
		if isNamespaceDecl(attr) {
			declared[attr.FullKey()] = true
		}
	}
	var inherited []etree.Attr
	for p := elem.Parent(); p != nil; p = p.Parent() {
		for _, attr := range p.Attr {
			if !isNamespaceDecl(attr) || declared[attr.FullKey()] {
				continue
			}
			declared[attr.FullKey()] = true
			inherited = append(inherited, attr)
		}
	}
	return inherited
}

func isNamespaceDecl(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns")
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
}
