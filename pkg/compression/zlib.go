// Package compression implements the zlib compression applied to EBICS order data
package compression

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxInflatedSize bounds the output of Decompress. Download order
// data is capped long before this by the bank's segment limits.
const DefaultMaxInflatedSize = 512 << 20

// ErrInflatedTooLarge is returned when a zlib stream inflates beyond the
// compressor's limit.
var ErrInflatedTooLarge = errors.New("inflated order data too large")

// Compressor deflates order data and signature data before encryption and
// inflates what the bank sends back. A Compressor holds no state between
// calls and is safe for concurrent use.
type Compressor struct {
	level    int
	maxBytes int64
}

// NewCompressor returns a compressor using zlib's default level.
func NewCompressor() *Compressor {
	return NewCompressorWithLevel(zlib.DefaultCompression)
}

// NewCompressorWithLevel returns a compressor using one of the zlib levels
// (zlib.NoCompression through zlib.BestCompression). Banks accept any
// level, since only the stream format is fixed.
func NewCompressorWithLevel(level int) *Compressor {
	return &Compressor{level: level, maxBytes: DefaultMaxInflatedSize}
}

// WithLimit returns a copy of c whose Decompress fails once the inflated
// data exceeds n bytes.
func (c *Compressor) WithLimit(n int64) *Compressor {
	out := *c
	out.maxBytes = n
	return &out
}

// Compress deflates data into a zlib stream (RFC 1950).
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib level %d: %w", c.level, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("deflating order data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflating order data: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream. A truncated stream or a bad Adler-32
// checksum is an error.
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading zlib header: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("inflating order data: %w", err)
	}
	if n > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInflatedTooLarge, c.maxBytes)
	}
	return buf.Bytes(), nil
}
