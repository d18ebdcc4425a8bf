package message

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

// Phase is the transaction phase of an ebicsRequest or ebicsResponse.
type Phase string

const (
	PhaseInitialisation Phase = "Initialisation"
	PhaseTransfer       Phase = "Transfer"
	PhaseReceipt        Phase = "Receipt"
)

// OrderAttribute tells the bank which parts an order carries
// (order data, electronic signature, ...).
type OrderAttribute string

const (
	// OZHNN: order data with electronic signature.
	OZHNN OrderAttribute = "OZHNN"
	// DZHNN: order data without signature, used for downloads.
	DZHNN OrderAttribute = "DZHNN"
	// DZNNN: unsecured key management orders (INI, HIA).
	DZNNN OrderAttribute = "DZNNN"
	// UZHNN: signature only (SPR).
	UZHNN OrderAttribute = "UZHNN"
)

// Product identifies the client software to the bank.
type Product struct {
	Name     string
	Language string
}

// DateRange restricts a download to a period.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// OrderParams are the order parameters of the static header.
//
// FUL and FDL orders carry FileFormat and Parameters; every other order
// type only uses DateRange.
type OrderParams struct {
	DateRange   *DateRange
	FileFormat  string
	CountryCode string
	Parameters  map[string]string
}

// BankDigests are the pinned digests of the bank's X002 and E002 keys.
type BankDigests struct {
	Authentication []byte
	Encryption     []byte
}

// StaticHeader holds the static header of initialisation requests.
type StaticHeader struct {
	HostID         string
	PartnerID      string
	UserID         string
	Product        *Product
	OrderType      ordertype.OrderType
	OrderAttribute OrderAttribute
	OrderParams    *OrderParams
	BankDigests    *BankDigests
	SecurityMedium string
	// NumSegments is only sent for upload initialisation; zero omits it.
	NumSegments int
	Nonce       []byte
	Timestamp   time.Time
}

// NewNonce returns 16 random bytes for the Nonce element.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// EncodeHex renders binary values (nonce, transaction id) the way EBICS
// expects them: uppercase hex.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex parses an EBICS hex value.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimSpace(s))
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func (p *OrderParams) render(parent *etree.Element, ot ordertype.OrderType) {
	switch ot.Code() {
	case ordertype.FUL.Code():
		params := parent.CreateElement("FULOrderParams")
		p.renderParameters(params)
		p.renderFileFormat(params)
	case ordertype.FDL.Code():
		params := parent.CreateElement("FDLOrderParams")
		p.renderDateRange(params)
		p.renderParameters(params)
		p.renderFileFormat(params)
	default:
		params := parent.CreateElement("StandardOrderParams")
		p.renderDateRange(params)
	}
}

func (p *OrderParams) renderDateRange(parent *etree.Element) {
	if p == nil || p.DateRange == nil {
		return
	}
	dr := parent.CreateElement("DateRange")
	dr.CreateElement("Start").SetText(formatDate(p.DateRange.Start))
	dr.CreateElement("End").SetText(formatDate(p.DateRange.End))
}

func (p *OrderParams) renderParameters(parent *etree.Element) {
	if p == nil || len(p.Parameters) == 0 {
		return
	}
	names := make([]string, 0, len(p.Parameters))
	for name := range p.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		param := parent.CreateElement("Parameter")
		param.CreateElement("Name").SetText(name)
		value := param.CreateElement("Value")
		value.CreateAttr("Type", "string")
		value.SetText(p.Parameters[name])
	}
}

func (p *OrderParams) renderFileFormat(parent *etree.Element) {
	ff := parent.CreateElement("FileFormat")
	if p == nil {
		return
	}
	if p.CountryCode != "" {
		ff.CreateAttr("CountryCode", p.CountryCode)
	}
	ff.SetText(p.FileFormat)
}
