package transfer

import "bytes"

// DefaultSegmentSize is the EBICS maximum segment size of 1 MiB.
const DefaultSegmentSize = 1 << 20

// SegmentCount returns ceil(length/size), at least 1.
func SegmentCount(length, size int) int {
	if size <= 0 {
		size = DefaultSegmentSize
	}
	if length <= 0 {
		return 1
	}
	return (length + size - 1) / size
}

// Split cuts data into segments of size bytes; only the last may be shorter.
// The segments share data's backing array.
func Split(data []byte, size int) [][]byte {
	if size <= 0 {
		size = DefaultSegmentSize
	}
	n := SegmentCount(len(data), size)
	out := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := min(start+size, len(data))
		out = append(out, data[start:end])
	}
	return out
}

// Joiner reassembles download segments in arrival order.
type Joiner struct {
	buf      bytes.Buffer
	segments int
}

// NewJoiner creates an empty joiner.
func NewJoiner() *Joiner {
	return &Joiner{}
}

// Append adds the next segment.
func (j *Joiner) Append(segment []byte) {
	j.buf.Write(segment)
	j.segments++
}

// Segments returns the number of appended segments.
func (j *Joiner) Segments() int { return j.segments }

// Len returns the number of buffered bytes.
func (j *Joiner) Len() int { return j.buf.Len() }

// Bytes returns the concatenated segments.
func (j *Joiner) Bytes() []byte { return j.buf.Bytes() }
