package ebics

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
	"github.com/sirosfoundation/go-ebics/pkg/security"
	"github.com/sirosfoundation/go-ebics/pkg/transfer"
)

// UploadResult describes a completed upload.
type UploadResult struct {
	TransactionID []byte
	OrderID       string
	Segments      int
}

// DownloadResult is the plaintext of a completed download.
type DownloadResult struct {
	TransactionID []byte
	OrderData     []byte
	// SignatureData is the decrypted UserSignatureData, if the bank sent one.
	SignatureData []byte
	Segments      int
}

// prepareUpload signs payload and seals the signature under a fresh
// transaction key wrapped for the bank.
func (c *Client) prepareUpload(op *operation, payload []byte) (*security.Envelope, message.UploadInit, error) {
	user := op.user()
	bank := op.bank()

	env, err := security.NewEnvelope()
	if err != nil {
		return nil, message.UploadInit{}, op.fail(ErrCrypto, err)
	}
	sig, err := security.SignOrderData(user.SignatureKey, payload)
	if err != nil {
		return nil, message.UploadInit{}, op.fail(ErrCrypto, err)
	}
	usd, err := message.Marshal(message.UserSignatureData(
		user.SignatureKey.Version(), sig, user.Partner.PartnerID, user.UserID))
	if err != nil {
		return nil, message.UploadInit{}, op.fail(ErrValidation, err)
	}
	sealedSig, err := env.Seal(usd)
	if err != nil {
		return nil, message.UploadInit{}, op.fail(ErrCrypto, err)
	}
	wrapped, err := env.WrappedKey(bank.EncryptionKey.PublicKey())
	if err != nil {
		return nil, message.UploadInit{}, op.fail(ErrCrypto, err)
	}
	return env, message.UploadInit{
		EncryptionDigest: bank.EncryptionKey.Digest(),
		TransactionKey:   wrapped,
		SignatureData:    sealedSig,
	}, nil
}

// Upload sends data as an order of type ot. The data is signed with the
// user's signature key, compressed, encrypted and sent in segments of at
// most Config.SegmentSize bytes.
func (c *Client) Upload(ctx context.Context, session *Session, ot ordertype.OrderType, data []byte, params *message.OrderParams) (*UploadResult, error) {
	ctx, op, err := c.begin(ctx, session, "upload", ot)
	if err != nil {
		return nil, err
	}
	if ot.Transmission() == ordertype.Download {
		return nil, op.fail(ErrValidation, fmt.Errorf("%s is a download order type", ot))
	}
	if err := op.requireKeys(true); err != nil {
		return nil, err
	}

	env, init, err := c.prepareUpload(op, data)
	if err != nil {
		return nil, err
	}
	ciphertext, err := env.Seal(data)
	if err != nil {
		return nil, op.fail(ErrCrypto, err)
	}
	segments := transfer.Split(ciphertext, session.Config.SegmentSize)
	state, err := transfer.NewState(len(segments))
	if err != nil {
		return nil, op.fail(ErrSequence, err)
	}

	op.logger.Info("starting upload", "size", len(data), "segments", len(segments))
	h, err := op.staticHeader(message.OZHNN, session.orderParams(params))
	if err != nil {
		return nil, err
	}
	h.NumSegments = len(segments)
	doc := message.UploadInitRequest(h, init)
	if err := op.sign(doc); err != nil {
		return nil, err
	}
	raw, err := op.exchange(ctx, "init", doc)
	if err != nil {
		return nil, err
	}
	r, err := op.response(raw)
	if err != nil {
		return nil, err
	}
	if len(r.TransactionID) == 0 {
		return nil, op.fail(ErrProtocol, fmt.Errorf("no transaction id in initialisation response"))
	}
	state.SetTransactionID(r.TransactionID)
	op.setTransactionID(r.TransactionID)
	orderID := r.OrderID

	for state.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, op.fail(ErrTransport, err)
		}
		n, err := state.Next()
		if err != nil {
			return nil, op.fail(ErrSequence, err)
		}
		op.segment = n
		op.logger.Debug("uploading segment", "segment", n, "last", state.IsLast())

		doc := message.UploadTransferRequest(op.bank().HostID, state.TransactionID(), n, state.IsLast(), segments[n-1])
		if err := op.sign(doc); err != nil {
			return nil, err
		}
		raw, err := op.exchange(ctx, fmt.Sprintf("transfer-%d", n), doc)
		if err != nil {
			return nil, err
		}
		r, err := op.response(raw)
		if err != nil {
			return nil, err
		}
		if r.OrderID != "" {
			orderID = r.OrderID
		}
	}
	if err := state.Finish(); err != nil {
		return nil, op.fail(ErrSequence, err)
	}

	op.logger.Info("upload complete", "order_id", orderID)
	return &UploadResult{
		TransactionID: state.TransactionID(),
		OrderID:       orderID,
		Segments:      state.Total(),
	}, nil
}

// Download fetches the order data of type ot. Segments are requested in
// order and decrypted once all have arrived; a positive receipt then
// closes the transaction. If the bank has nothing to deliver, the error
// matches ErrNoDownloadData.
func (c *Client) Download(ctx context.Context, session *Session, ot ordertype.OrderType, params *message.OrderParams) (*DownloadResult, error) {
	ctx, op, err := c.begin(ctx, session, "download", ot)
	if err != nil {
		return nil, err
	}
	if ot.Transmission() == ordertype.Upload {
		return nil, op.fail(ErrValidation, fmt.Errorf("%s is an upload order type", ot))
	}
	if err := op.requireKeys(false); err != nil {
		return nil, err
	}
	return c.download(ctx, op, session.orderParams(params))
}

func (c *Client) download(ctx context.Context, op *operation, params *message.OrderParams) (*DownloadResult, error) {
	op.logger.Info("starting download")
	h, err := op.staticHeader(message.DZHNN, params)
	if err != nil {
		return nil, err
	}
	doc := message.DownloadInitRequest(h)
	if err := op.sign(doc); err != nil {
		return nil, err
	}
	raw, err := op.exchange(ctx, "init", doc)
	if err != nil {
		return nil, err
	}
	init, err := op.response(raw)
	if err != nil {
		if errors.Is(err, ErrNoDownloadData) {
			op.logger.Info("no download data available")
		}
		return nil, err
	}
	if len(init.TransactionID) == 0 {
		return nil, op.fail(ErrProtocol, fmt.Errorf("no transaction id in initialisation response"))
	}
	op.setTransactionID(init.TransactionID)
	if len(init.TransactionKey) == 0 {
		return nil, op.fail(ErrProtocol, fmt.Errorf("no transaction key in initialisation response"))
	}

	total := init.NumSegments
	if total == 0 {
		total = 1
	}
	state, err := transfer.NewState(total)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	state.SetTransactionID(init.TransactionID)
	if err := op.applySegment(state, init.SegmentNumber, 1); err != nil {
		return nil, err
	}
	joiner := transfer.NewJoiner()
	joiner.Append(init.OrderData)

	for state.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, op.fail(ErrTransport, err)
		}
		n := state.Segment() + 1
		op.segment = n
		op.logger.Debug("downloading segment", "segment", n, "of", total)

		doc := message.DownloadTransferRequest(op.bank().HostID, state.TransactionID(), n, n == total)
		if err := op.sign(doc); err != nil {
			return nil, err
		}
		raw, err := op.exchange(ctx, fmt.Sprintf("transfer-%d", n), doc)
		if err != nil {
			return nil, err
		}
		r, err := op.response(raw)
		if err != nil {
			return nil, err
		}
		if err := op.applySegment(state, r.SegmentNumber, n); err != nil {
			return nil, err
		}
		joiner.Append(r.OrderData)
	}
	op.segment = 0

	user := op.user()
	if len(init.EncryptionDigest) > 0 && !bytes.Equal(init.EncryptionDigest, user.EncryptionKey.Digest()) {
		return nil, op.fail(ErrCrypto, fmt.Errorf("order data encrypted for another key"))
	}
	env, err := security.OpenEnvelope(user.EncryptionKey.PrivateKey(), init.TransactionKey)
	if err != nil {
		return nil, op.fail(ErrCrypto, err)
	}
	orderData, err := env.Open(joiner.Bytes())
	if err != nil {
		return nil, op.fail(ErrCrypto, err)
	}
	op.traceStep(ctx, "orderdata", orderData)
	var signatureData []byte
	if len(init.SignatureData) > 0 {
		if signatureData, err = env.Open(init.SignatureData); err != nil {
			return nil, op.fail(ErrCrypto, err)
		}
	}

	if err := state.Receipt(); err != nil {
		return nil, op.fail(ErrSequence, err)
	}
	doc = message.ReceiptRequest(op.bank().HostID, state.TransactionID(), 0)
	if err := op.sign(doc); err != nil {
		return nil, err
	}
	raw, err = op.exchange(ctx, "receipt", doc)
	if err != nil {
		return nil, err
	}
	if _, err := op.response(raw); err != nil {
		return nil, err
	}
	if err := state.Finish(); err != nil {
		return nil, op.fail(ErrSequence, err)
	}

	op.logger.Info("download complete", "size", len(orderData), "segments", state.Total())
	return &DownloadResult{
		TransactionID: state.TransactionID(),
		OrderData:     orderData,
		SignatureData: signatureData,
		Segments:      state.Total(),
	}, nil
}

// applySegment records the segment the bank returned. Responses without
// a segment number count as the requested segment.
func (op *operation) applySegment(state *transfer.State, got, requested int) error {
	if got == 0 {
		got = requested
	}
	if err := state.Apply(got); err != nil {
		return op.fail(ErrSequence, err)
	}
	return nil
}
