package message

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrInvalidDocument is returned by StructuralValidator.
var ErrInvalidDocument = errors.New("invalid EBICS document")

// StructuralValidator checks that a document is well-formed, has a known
// EBICS root in the right namespace and carries the mandatory header
// parts. It does not validate against the XML schema.
type StructuralValidator struct{}

type rootRule struct {
	namespace     string
	versioned     bool
	header        bool
	authSignature bool
}

var rootRules = map[string]rootRule{
	RootRequest:                {NamespaceH004, true, true, true},
	RootResponse:               {NamespaceH004, true, true, false},
	RootUnsecuredRequest:       {NamespaceH004, true, true, false},
	RootNoPubKeyDigestsRequest: {NamespaceH004, true, true, true},
	RootKeyManagementResponse:  {NamespaceH004, true, true, false},
	RootHEVRequest:             {NamespaceH000, false, false, false},
	RootHEVResponse:            {NamespaceH000, false, false, false},
}

// Validate implements the client's validation hook.
func (StructuralValidator) Validate(document []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: no root element", ErrInvalidDocument)
	}
	rule, ok := rootRules[root.Tag]
	if !ok {
		return fmt.Errorf("%w: unknown root element %s", ErrInvalidDocument, root.Tag)
	}
	if ns := root.NamespaceURI(); ns != rule.namespace {
		return fmt.Errorf("%w: %s in namespace %q, want %q", ErrInvalidDocument, root.Tag, ns, rule.namespace)
	}
	if rule.versioned && root.SelectAttrValue("Version", "") == "" {
		return fmt.Errorf("%w: %s has no Version attribute", ErrInvalidDocument, root.Tag)
	}
	if !rule.header {
		if root.SelectElement("HostID") == nil && root.Tag == RootHEVRequest {
			return fmt.Errorf("%w: HostID missing", ErrInvalidDocument)
		}
		return nil
	}

	header := root.SelectElement("header")
	if header == nil {
		return fmt.Errorf("%w: header missing", ErrInvalidDocument)
	}
	for _, part := range []string{"static", "mutable"} {
		if header.SelectElement(part) == nil {
			return fmt.Errorf("%w: header/%s missing", ErrInvalidDocument, part)
		}
	}
	if header.FindElement("./static/HostID") == nil && root.Tag != RootKeyManagementResponse && root.Tag != RootResponse {
		return fmt.Errorf("%w: HostID missing", ErrInvalidDocument)
	}
	if rule.authSignature && root.SelectElement("AuthSignature") == nil {
		return fmt.Errorf("%w: AuthSignature missing", ErrInvalidDocument)
	}
	if root.SelectElement("body") == nil {
		return fmt.Errorf("%w: body missing", ErrInvalidDocument)
	}
	return nil
}
