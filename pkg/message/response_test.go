package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_RoundTrip(t *testing.T) {
	in := &Response{
		TransactionID:    []byte{0xde, 0xad, 0xbe, 0xef},
		Phase:            PhaseInitialisation,
		NumSegments:      2,
		SegmentNumber:    1,
		OrderID:          "A001",
		TechnicalCode:    CodeOK,
		ReportText:       "[EBICS_OK] OK",
		EncryptionDigest: []byte{9, 9},
		TransactionKey:   []byte("wrapped"),
		OrderData:        []byte("segment-1"),
	}
	data, err := Marshal(BuildResponse(in))
	require.NoError(t, err)

	out, err := ParseResponse(data)
	require.NoError(t, err)
	assert.Equal(t, RootResponse, out.Root)
	assert.Equal(t, in.TransactionID, out.TransactionID)
	assert.Equal(t, PhaseInitialisation, out.Phase)
	assert.Equal(t, 2, out.NumSegments)
	assert.Equal(t, 1, out.SegmentNumber)
	assert.False(t, out.LastSegment)
	assert.Equal(t, "A001", out.OrderID)
	assert.Equal(t, CodeOK, out.BusinessCode)
	assert.Equal(t, in.EncryptionDigest, out.EncryptionDigest)
	assert.Equal(t, in.TransactionKey, out.TransactionKey)
	assert.Equal(t, in.OrderData, out.OrderData)
	assert.NoError(t, out.Err())
}

func TestResponse_Err(t *testing.T) {
	tests := []struct {
		name      string
		technical ReturnCode
		business  ReturnCode
		wantErr   bool
		wantCode  ReturnCode
		wantTech  bool
	}{
		{"ok", CodeOK, CodeOK, false, "", false},
		{"postprocess done", CodePostprocessDone, CodeOK, false, "", false},
		{"order params ignored", CodeOK, CodeOrderParamsIgnored, false, "", false},
		{"technical error", CodeAuthenticationFailed, CodeOK, true, CodeAuthenticationFailed, true},
		{"business error", CodeOK, CodeNoDownloadData, true, CodeNoDownloadData, false},
		{"missing code", "", "", true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{TechnicalCode: tt.technical, BusinessCode: tt.business}
			err := r.Err()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var rce *ReturnCodeError
			require.True(t, errors.As(err, &rce))
			assert.Equal(t, tt.wantCode, rce.Code)
			assert.Equal(t, tt.wantTech, rce.Technical)
		})
	}
}

func TestKeyManagementResponse(t *testing.T) {
	data, err := Marshal(BuildResponse(&Response{
		Root:          RootKeyManagementResponse,
		TechnicalCode: "091002",
		ReportText:    "[EBICS_INVALID_USER_OR_USER_STATE]",
	}))
	require.NoError(t, err)

	r, err := ParseResponse(data)
	require.NoError(t, err)
	assert.Equal(t, RootKeyManagementResponse, r.Root)
	assert.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "091002")
}

func TestParseResponse_Errors(t *testing.T) {
	_, err := ParseResponse([]byte(`<other/>`))
	assert.Error(t, err)

	_, err = ParseResponse([]byte(`<ebicsResponse xmlns="urn:org:ebics:H004"><header/></ebicsResponse>`))
	assert.Error(t, err)
}

func TestReturnCode(t *testing.T) {
	assert.True(t, CodeOK.OK())
	assert.True(t, ReturnCode("011001").OK())
	assert.False(t, CodeNoDownloadData.OK())
	assert.Equal(t, "EBICS_NO_DOWNLOAD_DATA_AVAILABLE", CodeNoDownloadData.Name())
	assert.Equal(t, "UNKNOWN", ReturnCode("999999").Name())
	assert.Equal(t, "000000 EBICS_OK", CodeOK.String())
}

func TestHEVResponse_RoundTrip(t *testing.T) {
	data, err := Marshal(BuildHEVResponse(&HEVResponse{
		Versions: []VersionInfo{{"H003", "02.40"}, {"H004", "02.50"}},
	}))
	require.NoError(t, err)

	r, err := ParseHEVResponse(data)
	require.NoError(t, err)
	assert.NoError(t, r.Err())
	require.Len(t, r.Versions, 2)
	assert.Equal(t, VersionInfo{"H004", "02.50"}, r.Versions[1])
}
