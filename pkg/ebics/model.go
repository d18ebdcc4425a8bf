package ebics

import (
	"fmt"
	"strings"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

// ProtocolVersion is an EBICS protocol version. Versions a bank reports
// that this package does not know are kept as-is.
type ProtocolVersion string

const (
	H003 ProtocolVersion = "H003"
	H004 ProtocolVersion = "H004"
	H005 ProtocolVersion = "H005"
)

// Known reports whether v is one of the defined versions.
func (v ProtocolVersion) Known() bool {
	switch v {
	case H003, H004, H005:
		return true
	}
	return false
}

// Bank is an EBICS host. The keys are public-only and nil until HPB has
// been run.
type Bank struct {
	HostID string
	URL    string
	Name   string
	// Country is the ISO 3166 code of the bank, used to decide which
	// conditional order types are mandatory.
	Country string

	AuthenticationKey *keys.Key
	EncryptionKey     *keys.Key

	Versions   []ProtocolVersion
	OrderTypes []ordertype.OrderType
}

// HasKeys reports whether both bank keys are known.
func (b Bank) HasKeys() bool {
	return b.AuthenticationKey != nil && b.EncryptionKey != nil
}

// German reports whether the bank is located in Germany.
func (b Bank) German() bool {
	return strings.EqualFold(b.Country, "DE")
}

// WithKeys returns a copy of b with the given authentication and
// encryption keys.
func (b Bank) WithKeys(authentication, encryption *keys.Key) Bank {
	b.AuthenticationKey = authentication
	b.EncryptionKey = encryption
	return b
}

// WithVersions returns a copy of b with the given supported versions.
func (b Bank) WithVersions(versions []ProtocolVersion) Bank {
	b.Versions = append([]ProtocolVersion(nil), versions...)
	return b
}

// WithOrderTypes returns a copy of b with the given supported order types.
func (b Bank) WithOrderTypes(types []ordertype.OrderType) Bank {
	b.OrderTypes = append([]ordertype.OrderType(nil), types...)
	return b
}

func (b Bank) digests() *message.BankDigests {
	if !b.HasKeys() {
		return nil
	}
	return &message.BankDigests{
		Authentication: b.AuthenticationKey.Digest(),
		Encryption:     b.EncryptionKey.Digest(),
	}
}

// Partner is an EBICS customer at exactly one bank.
type Partner struct {
	PartnerID string
	Bank      Bank
}

// User is an EBICS subscriber acting for a partner.
type User struct {
	UserID  string
	Name    string
	Partner Partner

	SignatureKey      *keys.Key
	AuthenticationKey *keys.Key
	EncryptionKey     *keys.Key

	SecurityMedium string

	// SignatureKeyRegistered is set once INI has succeeded.
	SignatureKeyRegistered bool
	// AuthEncKeysRegistered is set once HIA has succeeded.
	AuthEncKeysRegistered bool

	// Secrets protects the private keys at rest. It is never persisted.
	Secrets keys.SecretProvider
}

// key size for new users, lowered by tests
var userKeyBits = keys.DefaultBits

// NewUser creates a subscriber with fresh signature, authentication and
// encryption keys.
func NewUser(bank Bank, partnerID, userID, name string, signatureVersion keys.Version) (*User, error) {
	if bank.HostID == "" || partnerID == "" || userID == "" {
		return nil, fmt.Errorf("host id, partner id and user id are required")
	}
	if signatureVersion.Usage() != keys.UsageSignature {
		return nil, fmt.Errorf("%s is not a signature key version", signatureVersion)
	}
	sig, err := keys.Generate(signatureVersion, userKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signature key: %w", err)
	}
	auth, err := keys.Generate(keys.X002, userKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate authentication key: %w", err)
	}
	enc, err := keys.Generate(keys.E002, userKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return &User{
		UserID:            userID,
		Name:              name,
		Partner:           Partner{PartnerID: partnerID, Bank: bank},
		SignatureKey:      sig,
		AuthenticationKey: auth,
		EncryptionKey:     enc,
		SecurityMedium:    message.SecurityMediumDefault,
	}, nil
}

// Bank returns the bank of the user's partner.
func (u *User) Bank() Bank { return u.Partner.Bank }

func (u *User) clone() *User {
	c := *u
	return &c
}

// WithBank returns a copy of u whose partner is at bank.
func (u *User) WithBank(bank Bank) *User {
	c := u.clone()
	c.Partner.Bank = bank
	return c
}

// WithSecrets returns a copy of u using provider to protect its keys.
func (u *User) WithSecrets(provider keys.SecretProvider) *User {
	c := u.clone()
	c.Secrets = provider
	return c
}

func (u *User) withSignatureKeyRegistered() *User {
	c := u.clone()
	c.SignatureKeyRegistered = true
	return c
}

func (u *User) withAuthEncKeysRegistered() *User {
	c := u.clone()
	c.AuthEncKeysRegistered = true
	return c
}

// Session is the context of one operation. It is not persisted.
type Session struct {
	User       *User
	Config     Config
	Product    *message.Product
	Parameters map[string]string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig replaces the default protocol configuration.
func WithConfig(config Config) SessionOption {
	return func(s *Session) { s.Config = config }
}

// WithProduct identifies the client software to the bank.
func WithProduct(name, language string) SessionOption {
	return func(s *Session) { s.Product = &message.Product{Name: name, Language: language} }
}

// WithParameter sets a session parameter such as FORMAT or TEST.
func WithParameter(name, value string) SessionOption {
	return func(s *Session) { s.Parameters[name] = value }
}

// NewSession creates a session for user with DefaultConfig.
func NewSession(user *User, opts ...SessionOption) *Session {
	s := &Session{
		User:       user,
		Config:     DefaultConfig(),
		Parameters: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parameter returns a session parameter, or "" if unset.
func (s *Session) Parameter(name string) string {
	return s.Parameters[name]
}

// orderParams merges the session parameters into params for FUL/FDL.
// FORMAT becomes the file format; other parameters are sent as generic
// order parameters.
func (s *Session) orderParams(params *message.OrderParams) *message.OrderParams {
	merged := &message.OrderParams{CountryCode: s.Config.CountryCode}
	if params != nil {
		*merged = *params
		if merged.CountryCode == "" {
			merged.CountryCode = s.Config.CountryCode
		}
	}
	if len(s.Parameters) == 0 {
		return merged
	}
	extra := make(map[string]string, len(merged.Parameters)+len(s.Parameters))
	for name, value := range s.Parameters {
		if name == "FORMAT" {
			if merged.FileFormat == "" {
				merged.FileFormat = value
			}
			continue
		}
		extra[name] = value
	}
	for name, value := range merged.Parameters {
		extra[name] = value
	}
	merged.Parameters = extra
	return merged
}
