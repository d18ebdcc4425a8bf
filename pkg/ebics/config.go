package ebics

import (
	"fmt"

	"github.com/sirosfoundation/go-ebics/pkg/transfer"
)

// Config holds the protocol settings of a session
type Config struct {
	// Version must be H004; it is checked before anything is sent.
	Version ProtocolVersion

	// SegmentSize is the maximum ciphertext size of an upload segment.
	SegmentSize int

	// VerifyResponses enables verification of the bank's AuthSignature
	// on ebicsResponse documents once the bank keys are known.
	VerifyResponses bool

	// CountryCode is sent with the file format of FUL and FDL orders.
	CountryCode string
}

// DefaultConfig returns the configuration used by NewSession
func DefaultConfig() Config {
	return Config{
		Version:         H004,
		SegmentSize:     transfer.DefaultSegmentSize,
		VerifyResponses: true,
	}
}

func (c Config) validate() error {
	if c.Version != H004 {
		return fmt.Errorf("unsupported protocol version %q", c.Version)
	}
	if c.SegmentSize <= 0 {
		return fmt.Errorf("segment size must be positive, got %d", c.SegmentSize)
	}
	return nil
}
