package ebics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/message"
)

func TestNewUser(t *testing.T) {
	bank := Bank{HostID: testHostID, URL: testURL}

	user, err := NewUser(bank, "PARTNER1", "USER1", "Test User", keys.A006)
	require.NoError(t, err)
	assert.Equal(t, keys.A006, user.SignatureKey.Version())
	assert.Equal(t, keys.X002, user.AuthenticationKey.Version())
	assert.Equal(t, keys.E002, user.EncryptionKey.Version())
	assert.True(t, user.SignatureKey.HasPrivate())
	assert.Equal(t, message.SecurityMediumDefault, user.SecurityMedium)
	assert.False(t, user.SignatureKeyRegistered)
	assert.False(t, user.AuthEncKeysRegistered)
	assert.Equal(t, testHostID, user.Bank().HostID)

	_, err = NewUser(bank, "PARTNER1", "USER1", "Test User", keys.X002)
	assert.Error(t, err)
	_, err = NewUser(bank, "", "USER1", "Test User", keys.A005)
	assert.Error(t, err)
}

func TestUser_CopiesAreIndependent(t *testing.T) {
	user, err := NewUser(Bank{HostID: testHostID, URL: testURL}, "P", "U", "", keys.A005)
	require.NoError(t, err)

	registered := user.withSignatureKeyRegistered()
	assert.True(t, registered.SignatureKeyRegistered)
	assert.False(t, user.SignatureKeyRegistered)

	moved := user.WithBank(Bank{HostID: "OTHER", URL: testURL})
	assert.Equal(t, "OTHER", moved.Bank().HostID)
	assert.Equal(t, testHostID, user.Bank().HostID)
	assert.Same(t, user.SignatureKey, moved.SignatureKey)
}

func TestBank(t *testing.T) {
	auth, err := keys.Generate(keys.X002, 1024)
	require.NoError(t, err)
	enc, err := keys.Generate(keys.E002, 1024)
	require.NoError(t, err)

	bank := Bank{HostID: testHostID, Country: "de"}
	assert.False(t, bank.HasKeys())
	assert.Nil(t, bank.digests())
	assert.True(t, bank.German())

	withKeys := bank.WithKeys(auth.PublicOnly(), enc.PublicOnly())
	assert.True(t, withKeys.HasKeys())
	assert.False(t, bank.HasKeys())
	d := withKeys.digests()
	require.NotNil(t, d)
	assert.Equal(t, auth.Digest(), d.Authentication)
	assert.Equal(t, enc.Digest(), d.Encryption)
}

func TestProtocolVersion(t *testing.T) {
	assert.True(t, H004.Known())
	assert.False(t, ProtocolVersion("H009").Known())
}

func TestSession_OrderParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountryCode = "FR"
	session := NewSession(nil,
		WithConfig(cfg),
		WithParameter("FORMAT", "pain.001.001.03"),
		WithParameter("TEST", "true"))

	params := session.orderParams(nil)
	assert.Equal(t, "pain.001.001.03", params.FileFormat)
	assert.Equal(t, "FR", params.CountryCode)
	assert.Equal(t, map[string]string{"TEST": "true"}, params.Parameters)

	explicit := session.orderParams(&message.OrderParams{FileFormat: "camt.053", Parameters: map[string]string{"TEST": "false"}})
	assert.Equal(t, "camt.053", explicit.FileFormat)
	assert.Equal(t, "false", explicit.Parameters["TEST"])
	assert.Equal(t, "true", session.Parameter("TEST"))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().validate())

	cfg := DefaultConfig()
	cfg.SegmentSize = 0
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.Version = H003
	assert.Error(t, cfg.validate())
}

func TestError(t *testing.T) {
	rce := &message.ReturnCodeError{Code: message.CodeNoDownloadData, ReportText: "no data", Technical: true}
	err := &Error{
		Kind:          ErrProtocol,
		Op:            "download",
		OrderType:     "STA",
		TransactionID: []byte{0xab, 0xcd},
		Segment:       2,
		ReturnCode:    rce.Code,
		Err:           returnCodeError(rce),
	}

	assert.ErrorIs(t, err, ErrProtocol)
	assert.ErrorIs(t, err, ErrNoDownloadData)
	assert.NotErrorIs(t, err, ErrTransport)
	var got *message.ReturnCodeError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, message.CodeNoDownloadData, got.Code)

	msg := err.Error()
	assert.Contains(t, msg, "download STA")
	assert.Contains(t, msg, "ABCD")
	assert.Contains(t, msg, "segment 2")
	assert.Contains(t, msg, "090005")

	wrapped := fmt.Errorf("fetching statements: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNoDownloadData))

	other := returnCodeError(&message.ReturnCodeError{Code: message.CodeTxAbort})
	assert.False(t, errors.Is(other, ErrNoDownloadData))
}
