package ordertype

import (
	"fmt"
	"strings"
)

// Transmission is the direction of an order type.
type Transmission int

const (
	TransmissionUnknown Transmission = iota
	Download
	Upload
	Both
)

func (t Transmission) String() string {
	switch t {
	case Download:
		return "download"
	case Upload:
		return "upload"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Presence tells whether a bank has to offer an order type.
type Presence int

const (
	Optional Presence = iota
	Mandatory
	// Conditional order types are mandatory for German banks only.
	Conditional
)

type entry struct {
	code         string
	transmission Transmission
	presence     Presence
	description  string
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(catalog))
	for i := range catalog {
		m[catalog[i].code] = &catalog[i]
	}
	return m
}()

// OrderType is either a catalog entry or a raw code unknown to the catalog.
// The zero value is an empty raw code.
type OrderType struct {
	code  string
	entry *entry
}

// Frequently used order types.
var (
	INI = mustLookup("INI")
	HIA = mustLookup("HIA")
	HPB = mustLookup("HPB")
	HPD = mustLookup("HPD")
	HAA = mustLookup("HAA")
	HAC = mustLookup("HAC")
	HKD = mustLookup("HKD")
	HTD = mustLookup("HTD")
	HEV = mustLookup("HEV")
	SPR = mustLookup("SPR")
	FUL = mustLookup("FUL")
	FDL = mustLookup("FDL")
	STA = mustLookup("STA")
	VMK = mustLookup("VMK")
	C52 = mustLookup("C52")
	C53 = mustLookup("C53")
	CCT = mustLookup("CCT")
	CDD = mustLookup("CDD")
)

func mustLookup(code string) OrderType {
	e, ok := index[code]
	if !ok {
		panic(fmt.Sprintf("ordertype: %s missing from catalog", code))
	}
	return OrderType{code: code, entry: e}
}

// Parse returns the catalog entry for code, or a raw value if the code is
// unknown. It never fails.
func Parse(code string) OrderType {
	if e, ok := index[code]; ok {
		return OrderType{code: code, entry: e}
	}
	return OrderType{code: code}
}

// ParseList parses a blank separated list of codes as found in HAA order data.
func ParseList(s string) []OrderType {
	fields := strings.Fields(s)
	out := make([]OrderType, 0, len(fields))
	for _, f := range fields {
		out = append(out, Parse(f))
	}
	return out
}

// All returns every catalog entry in publication order.
func All() []OrderType {
	out := make([]OrderType, len(catalog))
	for i := range catalog {
		out[i] = OrderType{code: catalog[i].code, entry: &catalog[i]}
	}
	return out
}

// Code returns the three-character code.
func (o OrderType) Code() string { return o.code }

func (o OrderType) String() string { return o.code }

// Known reports whether o is a catalog entry.
func (o OrderType) Known() bool { return o.entry != nil }

// Transmission returns the direction, TransmissionUnknown for raw codes.
func (o OrderType) Transmission() Transmission {
	if o.entry == nil {
		return TransmissionUnknown
	}
	return o.entry.transmission
}

// Description returns the catalog description, empty for raw codes.
func (o OrderType) Description() string {
	if o.entry == nil {
		return ""
	}
	return o.entry.description
}

// IsMandatory reports whether a bank must support o. Conditional order
// types are mandatory only for German banks; raw codes are never mandatory.
func (o OrderType) IsMandatory(germanBank bool) bool {
	if o.entry == nil {
		return false
	}
	switch o.entry.presence {
	case Mandatory:
		return true
	case Conditional:
		return germanBank
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o OrderType) MarshalText() ([]byte, error) {
	return []byte(o.code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OrderType) UnmarshalText(text []byte) error {
	*o = Parse(string(text))
	return nil
}
