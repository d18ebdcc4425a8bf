package message

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Response is a parsed ebicsResponse or ebicsKeyManagementResponse.
type Response struct {
	Root          string
	TransactionID []byte
	Phase         Phase
	NumSegments   int
	SegmentNumber int
	LastSegment   bool
	OrderID       string

	// TechnicalCode and ReportText come from the mutable header.
	TechnicalCode ReturnCode
	ReportText    string
	// BusinessCode comes from the body.
	BusinessCode ReturnCode

	EncryptionDigest []byte
	// TransactionKey is the wrapped transaction key of a download.
	TransactionKey []byte
	// OrderData is the decoded segment or order data, still encrypted
	// for authenticated transactions.
	OrderData []byte
	// SignatureData is the encrypted UserSignatureData some banks attach
	// to the first download segment.
	SignatureData []byte

	Document *etree.Document
}

// ParseResponse parses a bank response.
func ParseResponse(data []byte) (*Response, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root.Tag != RootResponse && root.Tag != RootKeyManagementResponse {
		return nil, fmt.Errorf("unexpected root element %s", root.Tag)
	}

	r := &Response{Root: root.Tag, Document: doc}
	header := root.SelectElement("header")
	if header == nil {
		return nil, fmt.Errorf("header not found")
	}
	if static := header.SelectElement("static"); static != nil {
		if tx := childText(static, "TransactionID"); tx != "" {
			if r.TransactionID, err = DecodeHex(tx); err != nil {
				return nil, fmt.Errorf("invalid TransactionID: %w", err)
			}
		}
		if n := childText(static, "NumSegments"); n != "" {
			if r.NumSegments, err = strconv.Atoi(n); err != nil {
				return nil, fmt.Errorf("invalid NumSegments: %w", err)
			}
		}
	}
	if mutable := header.SelectElement("mutable"); mutable != nil {
		r.Phase = Phase(childText(mutable, "TransactionPhase"))
		if sn := mutable.SelectElement("SegmentNumber"); sn != nil {
			if r.SegmentNumber, err = strconv.Atoi(strings.TrimSpace(sn.Text())); err != nil {
				return nil, fmt.Errorf("invalid SegmentNumber: %w", err)
			}
			r.LastSegment = sn.SelectAttrValue("lastSegment", "false") == "true"
		}
		r.OrderID = childText(mutable, "OrderID")
		r.TechnicalCode = ReturnCode(childText(mutable, "ReturnCode"))
		r.ReportText = childText(mutable, "ReportText")
	}

	body := root.SelectElement("body")
	if body == nil {
		return nil, fmt.Errorf("body not found")
	}
	r.BusinessCode = ReturnCode(childText(body, "ReturnCode"))
	if dt := body.SelectElement("DataTransfer"); dt != nil {
		if info := dt.SelectElement("DataEncryptionInfo"); info != nil {
			if r.EncryptionDigest, err = decodeBase64(childText(info, "EncryptionPubKeyDigest")); err != nil {
				return nil, fmt.Errorf("invalid EncryptionPubKeyDigest: %w", err)
			}
			if r.TransactionKey, err = decodeBase64(childText(info, "TransactionKey")); err != nil {
				return nil, fmt.Errorf("invalid TransactionKey: %w", err)
			}
		}
		if r.SignatureData, err = decodeBase64(childText(dt, "SignatureData")); err != nil {
			return nil, fmt.Errorf("invalid SignatureData: %w", err)
		}
		if r.OrderData, err = decodeBase64(childText(dt, "OrderData")); err != nil {
			return nil, fmt.Errorf("invalid OrderData: %w", err)
		}
	}
	return r, nil
}

// ParseKeyManagementResponse parses the reply to INI, HIA or HPB.
func ParseKeyManagementResponse(data []byte) (*Response, error) {
	r, err := ParseResponse(data)
	if err != nil {
		return nil, err
	}
	if r.Root != RootKeyManagementResponse {
		return nil, fmt.Errorf("unexpected root element %s", r.Root)
	}
	return r, nil
}

// Err returns a *ReturnCodeError if the technical or business return
// code is not a success code.
func (r *Response) Err() error {
	if r.TechnicalCode == "" {
		return &ReturnCodeError{Code: r.TechnicalCode, ReportText: "missing return code", Technical: true}
	}
	if !r.TechnicalCode.OK() {
		return &ReturnCodeError{Code: r.TechnicalCode, ReportText: r.ReportText, Technical: true}
	}
	if r.BusinessCode != "" && !r.BusinessCode.OK() {
		return &ReturnCodeError{Code: r.BusinessCode, ReportText: r.ReportText}
	}
	return nil
}

// BuildResponse renders r as the bank would send it. Empty fields are
// omitted; codes default to CodeOK.
func BuildResponse(r *Response) *etree.Document {
	rootTag := r.Root
	if rootTag == "" {
		rootTag = RootResponse
	}
	doc, root := newDocument(rootTag)
	header := root.CreateElement("header")
	header.CreateAttr("authenticate", "true")
	static := header.CreateElement("static")
	if len(r.TransactionID) > 0 {
		static.CreateElement("TransactionID").SetText(EncodeHex(r.TransactionID))
	}
	if r.NumSegments > 0 {
		static.CreateElement("NumSegments").SetText(strconv.Itoa(r.NumSegments))
	}
	mutable := header.CreateElement("mutable")
	if r.Phase != "" {
		mutable.CreateElement("TransactionPhase").SetText(string(r.Phase))
	}
	if r.SegmentNumber > 0 {
		writeSegmentNumber(mutable, r.SegmentNumber, r.LastSegment)
	}
	if r.OrderID != "" {
		mutable.CreateElement("OrderID").SetText(r.OrderID)
	}
	mutable.CreateElement("ReturnCode").SetText(string(codeOrOK(r.TechnicalCode)))
	mutable.CreateElement("ReportText").SetText(r.ReportText)

	body := root.CreateElement("body")
	if len(r.TransactionKey) > 0 || len(r.OrderData) > 0 {
		dt := body.CreateElement("DataTransfer")
		if len(r.TransactionKey) > 0 {
			writeEncryptionInfo(dt, r.EncryptionDigest, r.TransactionKey)
		}
		if len(r.SignatureData) > 0 {
			sig := dt.CreateElement("SignatureData")
			sig.CreateAttr("authenticate", "true")
			sig.SetText(base64.StdEncoding.EncodeToString(r.SignatureData))
		}
		dt.CreateElement("OrderData").SetText(base64.StdEncoding.EncodeToString(r.OrderData))
	}
	rc := body.CreateElement("ReturnCode")
	rc.CreateAttr("authenticate", "true")
	rc.SetText(string(codeOrOK(r.BusinessCode)))
	return doc
}

func codeOrOK(c ReturnCode) ReturnCode {
	if c == "" {
		return CodeOK
	}
	return c
}

// VersionInfo is a protocol version offered by a bank.
type VersionInfo struct {
	Protocol string
	Version  string
}

// HEVResponse is a parsed ebicsHEVResponse.
type HEVResponse struct {
	Code       ReturnCode
	ReportText string
	Versions   []VersionInfo
}

// Err returns a *ReturnCodeError for non-success codes.
func (r *HEVResponse) Err() error {
	if !r.Code.OK() {
		return &ReturnCodeError{Code: r.Code, ReportText: r.ReportText, Technical: true}
	}
	return nil
}

// ParseHEVResponse parses an ebicsHEVResponse.
func ParseHEVResponse(data []byte) (*HEVResponse, error) {
	root, err := parseRoot(data, RootHEVResponse)
	if err != nil {
		return nil, err
	}
	r := &HEVResponse{}
	if src := root.SelectElement("SystemReturnCode"); src != nil {
		r.Code = ReturnCode(childText(src, "ReturnCode"))
		r.ReportText = childText(src, "ReportText")
	}
	for _, v := range root.SelectElements("VersionNumber") {
		r.Versions = append(r.Versions, VersionInfo{
			Protocol: v.SelectAttrValue("ProtocolVersion", ""),
			Version:  strings.TrimSpace(v.Text()),
		})
	}
	return r, nil
}

// BuildHEVResponse renders an ebicsHEVResponse.
func BuildHEVResponse(r *HEVResponse) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootHEVResponse)
	root.CreateAttr("xmlns", NamespaceH000)
	src := root.CreateElement("SystemReturnCode")
	src.CreateElement("ReturnCode").SetText(string(codeOrOK(r.Code)))
	src.CreateElement("ReportText").SetText(r.ReportText)
	for _, v := range r.Versions {
		vn := root.CreateElement("VersionNumber")
		vn.CreateAttr("ProtocolVersion", v.Protocol)
		vn.SetText(v.Version)
	}
	return doc
}
