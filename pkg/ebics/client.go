package ebics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-ebics/pkg/compression"
	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
	"github.com/sirosfoundation/go-ebics/pkg/security"
	"github.com/sirosfoundation/go-ebics/pkg/trace"
	"github.com/sirosfoundation/go-ebics/pkg/transport"
)

// Transport delivers a request document to a bank and returns the
// response document.
type Transport interface {
	Send(ctx context.Context, endpoint string, request []byte) ([]byte, error)
}

// Validator checks an outbound document before it is sent.
type Validator interface {
	Validate(document []byte) error
}

// Tracer receives every outbound and inbound document of an operation,
// and each decrypted order data payload. Tracing never fails an operation.
type Tracer interface {
	Trace(ctx context.Context, step string, document []byte)
}

// Client runs EBICS operations. It holds no per-transaction state.
type Client struct {
	transport  Transport
	validator  Validator
	tracer     Tracer
	logger     *slog.Logger
	compressor *compression.Compressor
	now        func() time.Time
}

// ClientConfig holds client configuration
type ClientConfig struct {
	// Transport defaults to an HTTPS client built from HTTPSConfig.
	Transport   Transport
	HTTPSConfig *transport.HTTPSConfig
	// Validator defaults to message.StructuralValidator.
	Validator Validator
	// Tracer defaults to trace.Nop.
	Tracer Tracer
	Logger *slog.Logger
}

// NewClient creates a new EBICS client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	t := config.Transport
	if t == nil {
		t = transport.NewHTTPSClient(config.HTTPSConfig)
	}
	v := config.Validator
	if v == nil {
		v = message.StructuralValidator{}
	}
	tr := config.Tracer
	if tr == nil {
		tr = trace.Nop{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		transport:  t,
		validator:  v,
		tracer:     tr,
		logger:     logger.With("component", "ebics"),
		compressor: compression.NewCompressor(),
		now:        time.Now,
	}, nil
}

// operation carries the context of one client call.
type operation struct {
	client    *Client
	session   *Session
	name      string
	orderType ordertype.OrderType
	logger    *slog.Logger

	transactionID []byte
	segment       int
}

// begin checks the session and prepares logging and tracing for an
// operation.
func (c *Client) begin(ctx context.Context, session *Session, name string, ot ordertype.OrderType) (context.Context, *operation, error) {
	op := &operation{client: c, session: session, name: name, orderType: ot, logger: c.logger}
	if session == nil || session.User == nil {
		return ctx, op, op.fail(ErrValidation, fmt.Errorf("session with user is required"))
	}
	if err := session.Config.validate(); err != nil {
		return ctx, op, op.fail(ErrValidation, err)
	}
	user := session.User
	if user.Bank().HostID == "" || user.Bank().URL == "" {
		return ctx, op, op.fail(ErrValidation, fmt.Errorf("bank host id and URL are required"))
	}

	if trace.CorrelationID(ctx) == "" {
		ctx = trace.WithCorrelationID(ctx, trace.NewCorrelationID())
	}
	op.logger = c.logger.With(
		"operation", name,
		"host_id", user.Bank().HostID,
		"partner_id", user.Partner.PartnerID,
		"user_id", user.UserID,
		"order_type", ot.Code(),
		"correlation_id", trace.CorrelationID(ctx),
	)
	return ctx, op, nil
}

// fail wraps err into an *Error carrying the operation context.
func (op *operation) fail(kind, err error) error {
	e := &Error{
		Kind:      kind,
		Op:        op.name,
		OrderType: op.orderType.Code(),
		Segment:   op.segment,
		Err:       err,
	}
	if len(op.transactionID) > 0 {
		e.TransactionID = append([]byte(nil), op.transactionID...)
	}
	var rce *message.ReturnCodeError
	if errors.As(err, &rce) {
		e.ReturnCode = rce.Code
		e.ReportText = rce.ReportText
	}
	op.logger.Error("operation failed", "kind", kind, "error", err)
	return e
}

func (op *operation) setTransactionID(id []byte) {
	op.transactionID = append([]byte(nil), id...)
	op.logger = op.logger.With("transaction_id", message.EncodeHex(id))
}

func (op *operation) user() *User { return op.session.User }

func (op *operation) bank() Bank { return op.session.User.Bank() }

func (op *operation) traceStep(ctx context.Context, step string, document []byte) {
	op.client.tracer.Trace(ctx, op.orderType.Code()+"-"+step, document)
}

// requireKeys checks the keys authenticated transactions need.
func (op *operation) requireKeys(signature bool) error {
	user := op.user()
	if user.AuthenticationKey == nil || !user.AuthenticationKey.HasPrivate() {
		return op.fail(ErrValidation, fmt.Errorf("authentication key: %w", ErrPrivateKeyMissing))
	}
	if user.EncryptionKey == nil || !user.EncryptionKey.HasPrivate() {
		return op.fail(ErrValidation, fmt.Errorf("encryption key: %w", ErrPrivateKeyMissing))
	}
	if signature && (user.SignatureKey == nil || !user.SignatureKey.HasPrivate()) {
		return op.fail(ErrValidation, fmt.Errorf("signature key: %w", ErrPrivateKeyMissing))
	}
	if !op.bank().HasKeys() {
		return op.fail(ErrValidation, ErrBankKeysMissing)
	}
	return nil
}

// staticHeader fills the static header of an initialisation request.
func (op *operation) staticHeader(attr message.OrderAttribute, params *message.OrderParams) (message.StaticHeader, error) {
	nonce, err := message.NewNonce()
	if err != nil {
		return message.StaticHeader{}, op.fail(ErrCrypto, err)
	}
	user := op.user()
	return message.StaticHeader{
		HostID:         op.bank().HostID,
		PartnerID:      user.Partner.PartnerID,
		UserID:         user.UserID,
		Product:        op.session.Product,
		OrderType:      op.orderType,
		OrderAttribute: attr,
		OrderParams:    params,
		BankDigests:    op.bank().digests(),
		SecurityMedium: user.SecurityMedium,
		Nonce:          nonce,
		Timestamp:      op.client.now(),
	}, nil
}

// sign adds the user's authentication signature to doc.
func (op *operation) sign(doc *etree.Document) error {
	if err := security.SignAuth(doc, op.user().AuthenticationKey); err != nil {
		return op.fail(ErrCrypto, err)
	}
	return nil
}

// exchange validates, traces and sends doc, and returns the raw response.
func (op *operation) exchange(ctx context.Context, step string, doc *etree.Document) ([]byte, error) {
	request, err := message.Marshal(doc)
	if err != nil {
		return nil, op.fail(ErrValidation, err)
	}
	if err := op.client.validator.Validate(request); err != nil {
		return nil, op.fail(ErrValidation, err)
	}
	op.traceStep(ctx, step+"-request", request)

	op.logger.Debug("sending request", "step", step, "size", len(request))
	response, err := op.client.transport.Send(ctx, op.bank().URL, request)
	if err != nil {
		return nil, op.fail(ErrTransport, err)
	}
	op.traceStep(ctx, step+"-response", response)
	return response, nil
}

// keyManagementResponse parses the reply to INI, HIA or HPB.
func (op *operation) keyManagementResponse(raw []byte) (*message.Response, error) {
	r, err := message.ParseKeyManagementResponse(raw)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	if err := r.Err(); err != nil {
		return nil, op.fail(ErrProtocol, returnCodeError(err))
	}
	return r, nil
}

// response parses an ebicsResponse, verifies its signature if configured
// and checks the return codes.
func (op *operation) response(raw []byte) (*message.Response, error) {
	r, err := message.ParseResponse(raw)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	if r.Root != message.RootResponse {
		return nil, op.fail(ErrProtocol, fmt.Errorf("unexpected root element %s", r.Root))
	}
	if op.session.Config.VerifyResponses && op.bank().AuthenticationKey != nil {
		if err := security.VerifyAuth(r.Document, op.bank().AuthenticationKey.PublicKey()); err != nil {
			return nil, op.fail(ErrCrypto, err)
		}
	}
	if err := r.Err(); err != nil {
		return nil, op.fail(ErrProtocol, returnCodeError(err))
	}
	if len(op.transactionID) > 0 && len(r.TransactionID) > 0 && !bytes.Equal(op.transactionID, r.TransactionID) {
		return nil, op.fail(ErrProtocol, fmt.Errorf("response for transaction %s", message.EncodeHex(r.TransactionID)))
	}
	if r.TechnicalCode != message.CodeOK || (r.BusinessCode != "" && r.BusinessCode != message.CodeOK) {
		op.logger.Info("bank reported", "technical_code", r.TechnicalCode, "business_code", r.BusinessCode, "report", r.ReportText)
	}
	return r, nil
}
