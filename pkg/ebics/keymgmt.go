package ebics

import (
	"bytes"
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
	"github.com/sirosfoundation/go-ebics/pkg/security"
)

// SendINI registers the user's signature key. It returns the user
// unchanged, without contacting the bank, if the key is already
// registered.
func (c *Client) SendINI(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "INI", ordertype.INI)
	if err != nil {
		return nil, err
	}
	user := session.User
	if user.SignatureKeyRegistered {
		op.logger.Info("signature key already registered")
		return user, nil
	}
	if user.SignatureKey == nil {
		return nil, op.fail(ErrValidation, fmt.Errorf("signature key is required"))
	}

	op.logger.Info("sending INI request", "key_version", user.SignatureKey.Version())
	orderData := message.SignaturePubKeyOrderData(
		message.PubKeyInfoFrom(user.SignatureKey), user.Partner.PartnerID, user.UserID)
	if err := c.sendUnsecured(ctx, op, orderData, user.SecurityMedium); err != nil {
		return nil, err
	}

	op.logger.Info("signature key registered")
	return user.withSignatureKeyRegistered(), nil
}

// SendHIA registers the user's authentication and encryption keys. It
// returns the user unchanged, without contacting the bank, if the keys are
// already registered.
func (c *Client) SendHIA(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "HIA", ordertype.HIA)
	if err != nil {
		return nil, err
	}
	user := session.User
	if user.AuthEncKeysRegistered {
		op.logger.Info("authentication and encryption keys already registered")
		return user, nil
	}
	if user.AuthenticationKey == nil || user.EncryptionKey == nil {
		return nil, op.fail(ErrValidation, fmt.Errorf("authentication and encryption keys are required"))
	}

	op.logger.Info("sending HIA request")
	orderData := message.HIARequestOrderData(
		message.PubKeyInfoFrom(user.AuthenticationKey),
		message.PubKeyInfoFrom(user.EncryptionKey),
		user.Partner.PartnerID, user.UserID)
	if err := c.sendUnsecured(ctx, op, orderData, message.SecurityMediumUnknown); err != nil {
		return nil, err
	}

	op.logger.Info("authentication and encryption keys registered")
	return user.withAuthEncKeysRegistered(), nil
}

// sendUnsecured sends key management order data in an
// ebicsUnsecuredRequest and checks the bank's reply.
func (c *Client) sendUnsecured(ctx context.Context, op *operation, orderData *etree.Document, medium string) error {
	raw, err := message.Marshal(orderData)
	if err != nil {
		return op.fail(ErrValidation, err)
	}
	op.traceStep(ctx, "orderdata", raw)
	compressed, err := c.compressor.Compress(raw)
	if err != nil {
		return op.fail(ErrValidation, err)
	}

	user := op.user()
	h := message.StaticHeader{
		HostID:         op.bank().HostID,
		PartnerID:      user.Partner.PartnerID,
		UserID:         user.UserID,
		Product:        op.session.Product,
		OrderType:      op.orderType,
		OrderAttribute: message.DZNNN,
		SecurityMedium: medium,
	}
	response, err := op.exchange(ctx, "request", message.UnsecuredRequest(h, compressed))
	if err != nil {
		return err
	}
	_, err = op.keyManagementResponse(response)
	return err
}

// SendHPB downloads the bank's authentication and encryption keys and
// returns a copy of the user whose bank carries them. The bank is always
// contacted.
func (c *Client) SendHPB(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "HPB", ordertype.HPB)
	if err != nil {
		return nil, err
	}
	user := session.User
	if user.AuthenticationKey == nil || !user.AuthenticationKey.HasPrivate() {
		return nil, op.fail(ErrValidation, fmt.Errorf("authentication key: %w", ErrPrivateKeyMissing))
	}
	if user.EncryptionKey == nil || !user.EncryptionKey.HasPrivate() {
		return nil, op.fail(ErrValidation, fmt.Errorf("encryption key: %w", ErrPrivateKeyMissing))
	}

	op.logger.Info("sending HPB request")
	h, err := op.staticHeader(message.DZHNN, nil)
	if err != nil {
		return nil, err
	}
	doc := message.NoPubKeyDigestsRequest(h)
	if err := op.sign(doc); err != nil {
		return nil, err
	}
	raw, err := op.exchange(ctx, "request", doc)
	if err != nil {
		return nil, err
	}
	r, err := op.keyManagementResponse(raw)
	if err != nil {
		return nil, err
	}

	if len(r.EncryptionDigest) > 0 && !bytes.Equal(r.EncryptionDigest, user.EncryptionKey.Digest()) {
		return nil, op.fail(ErrCrypto, fmt.Errorf("order data encrypted for another key"))
	}
	env, err := security.OpenEnvelope(user.EncryptionKey.PrivateKey(), r.TransactionKey)
	if err != nil {
		return nil, op.fail(ErrCrypto, err)
	}
	orderData, err := env.Open(r.OrderData)
	if err != nil {
		return nil, op.fail(ErrCrypto, err)
	}
	op.traceStep(ctx, "orderdata", orderData)

	bankKeys, err := message.ParseHPBResponseOrderData(orderData)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	if bankKeys.HostID != "" && bankKeys.HostID != op.bank().HostID {
		return nil, op.fail(ErrProtocol, fmt.Errorf("keys for host %s", bankKeys.HostID))
	}
	auth, err := bankKey(bankKeys.Authentication, keys.UsageAuthentication)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	enc, err := bankKey(bankKeys.Encryption, keys.UsageEncryption)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}

	op.logger.Info("bank keys received",
		"authentication_digest", fmt.Sprintf("%X", auth.Digest()),
		"encryption_digest", fmt.Sprintf("%X", enc.Digest()))
	return user.WithBank(op.bank().WithKeys(auth, enc)), nil
}

func bankKey(info message.PubKeyInfo, usage keys.Usage) (*keys.Key, error) {
	if info.Version.Usage() != usage {
		return nil, fmt.Errorf("bank sent %s key as %s key", info.Version, usage)
	}
	return info.Key()
}

// Revoke suspends the subscriber (SPR). The registration flags are left
// untouched; the bank decides when the subscriber may register again.
func (c *Client) Revoke(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "SPR", ordertype.SPR)
	if err != nil {
		return nil, err
	}
	if err := op.requireKeys(true); err != nil {
		return nil, err
	}

	op.logger.Info("sending SPR request")
	// SPR signs a single blank instead of order data.
	_, init, err := c.prepareUpload(op, []byte(" "))
	if err != nil {
		return nil, err
	}
	h, err := op.staticHeader(message.UZHNN, session.orderParams(nil))
	if err != nil {
		return nil, err
	}
	doc := message.UploadInitRequest(h, init)
	if err := op.sign(doc); err != nil {
		return nil, err
	}
	raw, err := op.exchange(ctx, "init", doc)
	if err != nil {
		return nil, err
	}
	if _, err := op.response(raw); err != nil {
		return nil, err
	}

	op.logger.Info("subscriber suspended")
	return session.User, nil
}
