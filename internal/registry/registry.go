// Package registry persists EBICS banks, partners and users in a
// storage.Store.
//
// Records are JSON. Public keys are stored as PEM; private keys are sealed
// with the user's keys.SecretProvider and never written in clear.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sirosfoundation/go-ebics/internal/storage"
	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

// ErrSecretRequired is returned when private keys are saved without a
// secret provider.
var ErrSecretRequired = errors.New("secret provider required to store private keys")

type keyRecord struct {
	Version keys.Version    `json:"version"`
	Public  string          `json:"public"`
	Created time.Time       `json:"created"`
	Private json.RawMessage `json:"private,omitempty"`
}

type bankRecord struct {
	HostID            string                `json:"hostId"`
	URL               string                `json:"url"`
	Name              string                `json:"name,omitempty"`
	Country           string                `json:"country,omitempty"`
	AuthenticationKey *keyRecord            `json:"authenticationKey,omitempty"`
	EncryptionKey     *keyRecord            `json:"encryptionKey,omitempty"`
	Versions          []string              `json:"versions,omitempty"`
	OrderTypes        []ordertype.OrderType `json:"orderTypes,omitempty"`
}

type partnerRecord struct {
	PartnerID string `json:"partnerId"`
	HostID    string `json:"hostId"`
}

type userRecord struct {
	UserID                 string     `json:"userId"`
	Name                   string     `json:"name,omitempty"`
	PartnerID              string     `json:"partnerId"`
	SecurityMedium         string     `json:"securityMedium"`
	SignatureKey           *keyRecord `json:"signatureKey"`
	AuthenticationKey      *keyRecord `json:"authenticationKey"`
	EncryptionKey          *keyRecord `json:"encryptionKey"`
	SignatureKeyRegistered bool       `json:"signatureKeyRegistered"`
	AuthEncKeysRegistered  bool       `json:"authEncKeysRegistered"`
}

// Registry loads and saves subscriber records.
type Registry struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates a registry on top of store.
func New(store storage.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: store, logger: logger.With("component", "registry")}
}

// SaveUser stores the user together with its partner and bank. Private
// keys are sealed with user.Secrets.
func (r *Registry) SaveUser(ctx context.Context, user *ebics.User) error {
	rec := userRecord{
		UserID:                 user.UserID,
		Name:                   user.Name,
		PartnerID:              user.Partner.PartnerID,
		SecurityMedium:         user.SecurityMedium,
		SignatureKeyRegistered: user.SignatureKeyRegistered,
		AuthEncKeysRegistered:  user.AuthEncKeysRegistered,
	}
	var err error
	if rec.SignatureKey, err = encodeKey(ctx, user.Secrets, user.UserID, user.SignatureKey); err != nil {
		return fmt.Errorf("encoding signature key: %w", err)
	}
	if rec.AuthenticationKey, err = encodeKey(ctx, user.Secrets, user.UserID, user.AuthenticationKey); err != nil {
		return fmt.Errorf("encoding authentication key: %w", err)
	}
	if rec.EncryptionKey, err = encodeKey(ctx, user.Secrets, user.UserID, user.EncryptionKey); err != nil {
		return fmt.Errorf("encoding encryption key: %w", err)
	}

	if err := r.SaveBank(ctx, user.Bank()); err != nil {
		return err
	}
	if err := r.put(ctx, storage.KindPartner, user.Partner.PartnerID, partnerRecord{
		PartnerID: user.Partner.PartnerID,
		HostID:    user.Bank().HostID,
	}); err != nil {
		return err
	}
	if err := r.put(ctx, storage.KindUser, user.UserID, rec); err != nil {
		return err
	}
	r.logger.Debug("user saved", "user_id", user.UserID, "partner_id", user.Partner.PartnerID)
	return nil
}

// LoadUser loads a user with its partner and bank. With a nil provider
// the user's keys are public-only.
func (r *Registry) LoadUser(ctx context.Context, userID string, secrets keys.SecretProvider) (*ebics.User, error) {
	var rec userRecord
	if err := r.get(ctx, storage.KindUser, userID, &rec); err != nil {
		return nil, err
	}
	var prec partnerRecord
	if err := r.get(ctx, storage.KindPartner, rec.PartnerID, &prec); err != nil {
		return nil, err
	}
	bank, err := r.LoadBank(ctx, prec.HostID)
	if err != nil {
		return nil, err
	}

	user := &ebics.User{
		UserID:                 rec.UserID,
		Name:                   rec.Name,
		Partner:                ebics.Partner{PartnerID: prec.PartnerID, Bank: bank},
		SecurityMedium:         rec.SecurityMedium,
		SignatureKeyRegistered: rec.SignatureKeyRegistered,
		AuthEncKeysRegistered:  rec.AuthEncKeysRegistered,
		Secrets:                secrets,
	}
	if user.SignatureKey, err = decodeKey(ctx, secrets, userID, rec.SignatureKey); err != nil {
		return nil, fmt.Errorf("decoding signature key: %w", err)
	}
	if user.AuthenticationKey, err = decodeKey(ctx, secrets, userID, rec.AuthenticationKey); err != nil {
		return nil, fmt.Errorf("decoding authentication key: %w", err)
	}
	if user.EncryptionKey, err = decodeKey(ctx, secrets, userID, rec.EncryptionKey); err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	return user, nil
}

// SaveBank stores a bank record. Bank keys are public-only.
func (r *Registry) SaveBank(ctx context.Context, bank ebics.Bank) error {
	rec := bankRecord{
		HostID:     bank.HostID,
		URL:        bank.URL,
		Name:       bank.Name,
		Country:    bank.Country,
		OrderTypes: bank.OrderTypes,
	}
	for _, v := range bank.Versions {
		rec.Versions = append(rec.Versions, string(v))
	}
	var err error
	if rec.AuthenticationKey, err = encodeKey(ctx, nil, "", publicOnly(bank.AuthenticationKey)); err != nil {
		return fmt.Errorf("encoding bank authentication key: %w", err)
	}
	if rec.EncryptionKey, err = encodeKey(ctx, nil, "", publicOnly(bank.EncryptionKey)); err != nil {
		return fmt.Errorf("encoding bank encryption key: %w", err)
	}
	return r.put(ctx, storage.KindBank, bank.HostID, rec)
}

// LoadBank loads a bank record.
func (r *Registry) LoadBank(ctx context.Context, hostID string) (ebics.Bank, error) {
	var rec bankRecord
	if err := r.get(ctx, storage.KindBank, hostID, &rec); err != nil {
		return ebics.Bank{}, err
	}
	bank := ebics.Bank{
		HostID:     rec.HostID,
		URL:        rec.URL,
		Name:       rec.Name,
		Country:    rec.Country,
		OrderTypes: rec.OrderTypes,
	}
	for _, v := range rec.Versions {
		bank.Versions = append(bank.Versions, ebics.ProtocolVersion(v))
	}
	var err error
	if bank.AuthenticationKey, err = decodeKey(ctx, nil, "", rec.AuthenticationKey); err != nil {
		return ebics.Bank{}, fmt.Errorf("decoding bank authentication key: %w", err)
	}
	if bank.EncryptionKey, err = decodeKey(ctx, nil, "", rec.EncryptionKey); err != nil {
		return ebics.Bank{}, fmt.Errorf("decoding bank encryption key: %w", err)
	}
	return bank, nil
}

// Users lists the ids of all stored users.
func (r *Registry) Users(ctx context.Context) ([]string, error) {
	return r.store.List(ctx, storage.KindUser)
}

// DeleteUser removes a user record. Its partner and bank are kept.
func (r *Registry) DeleteUser(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, storage.KindUser, userID)
}

func (r *Registry) put(ctx context.Context, kind storage.Kind, id string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", kind, id, err)
	}
	return r.store.Put(ctx, kind, id, data)
}

func (r *Registry) get(ctx context.Context, kind storage.Kind, id string, v any) error {
	data, err := r.store.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s %s: %w", kind, id, err)
	}
	return nil
}

func publicOnly(k *keys.Key) *keys.Key {
	if k == nil {
		return nil
	}
	return k.PublicOnly()
}

func encodeKey(ctx context.Context, secrets keys.SecretProvider, userID string, k *keys.Key) (*keyRecord, error) {
	if k == nil {
		return nil, nil
	}
	pub, err := keys.EncodePublicPEM(k.PublicKey())
	if err != nil {
		return nil, err
	}
	rec := &keyRecord{Version: k.Version(), Public: string(pub), Created: k.Created()}
	if k.HasPrivate() {
		if secrets == nil {
			return nil, ErrSecretRequired
		}
		if rec.Private, err = keys.Seal(ctx, secrets, userID, k); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func decodeKey(ctx context.Context, secrets keys.SecretProvider, userID string, rec *keyRecord) (*keys.Key, error) {
	if rec == nil {
		return nil, nil
	}
	pub, err := keys.DecodePublicPEM([]byte(rec.Public))
	if err != nil {
		return nil, err
	}
	if secrets == nil || len(rec.Private) == 0 {
		return keys.New(rec.Version, pub, nil, rec.Created)
	}
	k, err := keys.Open(ctx, secrets, userID, rec.Private)
	if err != nil {
		return nil, err
	}
	if !k.PublicKey().Equal(pub) {
		return nil, fmt.Errorf("sealed %s key does not match its public key", rec.Version)
	}
	return k, nil
}
