package ordertype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Known(t *testing.T) {
	ot := Parse("HPB")
	assert.True(t, ot.Known())
	assert.Equal(t, "HPB", ot.Code())
	assert.Equal(t, Download, ot.Transmission())
	assert.Equal(t, HPB, ot)
	assert.NotEmpty(t, ot.Description())
}

func TestParse_UnknownIsRaw(t *testing.T) {
	ot := Parse("ZZZ")
	assert.False(t, ot.Known())
	assert.Equal(t, "ZZZ", ot.Code())
	assert.Equal(t, TransmissionUnknown, ot.Transmission())
	assert.Empty(t, ot.Description())
	assert.False(t, ot.IsMandatory(true))
}

func TestIsMandatory(t *testing.T) {
	tests := []struct {
		code   string
		german bool
		want   bool
	}{
		{"INI", false, true},
		{"INI", true, true},
		{"HEV", false, true},
		{"SPR", false, true},
		{"HVU", true, true},
		{"HVU", false, false},
		{"HVE", true, true},
		{"HVS", false, false},
		{"FUL", true, false},
		{"FUL", false, false},
		{"STA", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.code).IsMandatory(tt.german))
		})
	}
}

func TestCatalog_Consistency(t *testing.T) {
	all := All()
	require.Len(t, all, len(index), "duplicate codes in catalog")
	for _, ot := range all {
		assert.Len(t, ot.Code(), 3, ot.Code())
		assert.NotEqual(t, TransmissionUnknown, ot.Transmission(), ot.Code())
	}
}

func TestParseList(t *testing.T) {
	list := ParseList("CCT  STA\nZZZ ")
	require.Len(t, list, 3)
	assert.Equal(t, CCT, list[0])
	assert.Equal(t, STA, list[1])
	assert.False(t, list[2].Known())
}

func TestOrderType_JSON(t *testing.T) {
	in := []OrderType{C53, Parse("XYZ")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["C53","XYZ"]`, string(data))

	var out []OrderType
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
