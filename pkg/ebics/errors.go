package ebics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirosfoundation/go-ebics/pkg/message"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	ErrTransport  = errors.New("transport failure")
	ErrValidation = errors.New("validation failure")
	ErrCrypto     = errors.New("cryptographic failure")
	ErrProtocol   = errors.New("protocol failure")
	ErrSequence   = errors.New("transfer sequence failure")
)

var (
	// ErrNoDownloadData is wrapped by the *Error returned for return code
	// 090005.
	ErrNoDownloadData = errors.New("no download data available")
	// ErrBankKeysMissing is returned by authenticated operations before HPB.
	ErrBankKeysMissing = errors.New("bank keys unknown, run HPB first")
	// ErrPrivateKeyMissing is returned when a user key has no private part.
	ErrPrivateKeyMissing = errors.New("private key missing")
)

// Error describes a failed operation.
type Error struct {
	Kind          error
	Op            string
	OrderType     string
	TransactionID []byte
	Segment       int
	ReturnCode    message.ReturnCode
	ReportText    string
	Err           error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.OrderType != "" && e.OrderType != e.Op {
		fmt.Fprintf(&b, " %s", e.OrderType)
	}
	if len(e.TransactionID) > 0 {
		fmt.Fprintf(&b, " transaction %s", message.EncodeHex(e.TransactionID))
	}
	if e.Segment > 0 {
		fmt.Fprintf(&b, " segment %d", e.Segment)
	}
	if e.Kind != nil {
		fmt.Fprintf(&b, ": %v", e.Kind)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// returnCodeError marks 090005 with ErrNoDownloadData.
func returnCodeError(err error) error {
	var rce *message.ReturnCodeError
	if errors.As(err, &rce) && rce.Code == message.CodeNoDownloadData {
		return fmt.Errorf("%w: %w", ErrNoDownloadData, err)
	}
	return err
}
