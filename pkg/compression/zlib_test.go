package compression

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_CompressDecompress(t *testing.T) {
	compressor := NewCompressor()

	repeated := "<Document><CstmrCdtTrfInitn>repeated content</CstmrCdtTrfInitn></Document>"
	testData := []byte(repeated + repeated + repeated + repeated + repeated)

	compressed, err := compressor.Compress(testData)
	require.NoError(t, err)
	assert.NotEmpty(t, compressed)
	assert.Less(t, len(compressed), len(testData))

	decompressed, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, testData, decompressed)
}

func TestCompressor_EmptyData(t *testing.T) {
	compressor := NewCompressor()

	compressed, err := compressor.Compress([]byte{})
	require.NoError(t, err)
	assert.NotEmpty(t, compressed) // zlib header and checksum

	decompressed, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestCompressor_LargeData(t *testing.T) {
	compressor := NewCompressor()

	largeData := bytes.Repeat([]byte("test data "), 100000)

	compressed, err := compressor.Compress(largeData)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(largeData)/10)

	decompressed, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, largeData, decompressed)
}

func TestCompressor_Levels(t *testing.T) {
	data := bytes.Repeat([]byte("abc"), 1000)
	for _, level := range []int{zlib.NoCompression, zlib.BestSpeed, zlib.BestCompression} {
		c := NewCompressorWithLevel(level)
		compressed, err := c.Compress(data)
		require.NoError(t, err)
		out, err := c.Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}

	_, err := NewCompressorWithLevel(42).Compress(data)
	assert.Error(t, err)
}

func TestCompressor_InvalidData(t *testing.T) {
	_, err := NewCompressor().Decompress([]byte("not zlib"))
	assert.Error(t, err)
}

func TestCompressor_Limit(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 4096)
	compressed, err := NewCompressor().Compress(data)
	require.NoError(t, err)

	out, err := NewCompressor().WithLimit(4096).Decompress(compressed)
	require.NoError(t, err)
	assert.Len(t, out, 4096)

	_, err = NewCompressor().WithLimit(4095).Decompress(compressed)
	assert.ErrorIs(t, err, ErrInflatedTooLarge)
}

func TestCompressor_TruncatedStream(t *testing.T) {
	compressed, err := NewCompressor().Compress([]byte("<Document>payment</Document>"))
	require.NoError(t, err)

	_, err = NewCompressor().Decompress(compressed[:len(compressed)-2])
	assert.Error(t, err)
}
