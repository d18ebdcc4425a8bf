package transfer

import (
	"bytes"
	"fmt"
	"testing"
)

func TestSegmentCount(t *testing.T) {
	const s = 1024
	tests := []struct {
		length int
		want   int
	}{
		{0, 1},
		{1, 1},
		{s - 1, 1},
		{s, 1},
		{s + 1, 2},
		{10 * s, 10},
		{10*s + 1, 11},
	}
	for _, tt := range tests {
		if got := SegmentCount(tt.length, s); got != tt.want {
			t.Errorf("SegmentCount(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestSplitJoin(t *testing.T) {
	const s = 64
	for _, length := range []int{0, 1, s - 1, s, s + 1, 10 * s} {
		t.Run(fmt.Sprintf("%d bytes", length), func(t *testing.T) {
			data := make([]byte, length)
			for i := range data {
				data[i] = byte(i)
			}

			segments := Split(data, s)
			if len(segments) != SegmentCount(length, s) {
				t.Fatalf("expected %d segments, got %d", SegmentCount(length, s), len(segments))
			}
			for i, seg := range segments[:len(segments)-1] {
				if len(seg) != s {
					t.Errorf("segment %d has %d bytes, want %d", i+1, len(seg), s)
				}
			}

			j := NewJoiner()
			for _, seg := range segments {
				j.Append(seg)
			}
			if j.Segments() != len(segments) {
				t.Errorf("expected %d joined segments, got %d", len(segments), j.Segments())
			}
			if !bytes.Equal(j.Bytes(), data) {
				t.Error("joined data differs from input")
			}
			if j.Len() != length {
				t.Errorf("expected %d bytes, got %d", length, j.Len())
			}
		})
	}
}

func TestSplit_DefaultSize(t *testing.T) {
	segments := Split(make([]byte, DefaultSegmentSize+1), 0)
	if len(segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(segments))
	}
}
