package ebics

import (
	"context"

	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

// FetchVersions asks the bank which protocol versions it supports (HEV)
// and returns a copy of the user whose bank lists them. HEV needs no keys.
func (c *Client) FetchVersions(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "HEV", ordertype.HEV)
	if err != nil {
		return nil, err
	}

	raw, err := op.exchange(ctx, "request", message.HEVRequest(op.bank().HostID))
	if err != nil {
		return nil, err
	}
	r, err := message.ParseHEVResponse(raw)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	if err := r.Err(); err != nil {
		return nil, op.fail(ErrProtocol, err)
	}

	versions := make([]ProtocolVersion, 0, len(r.Versions))
	for _, v := range r.Versions {
		versions = append(versions, ProtocolVersion(v.Protocol))
		op.logger.Debug("bank supports version", "protocol", v.Protocol, "version", v.Version)
	}
	op.logger.Info("protocol versions received", "count", len(versions))
	return session.User.WithBank(op.bank().WithVersions(versions)), nil
}

// FetchOrderTypes downloads the order types the bank offers the user (HAA)
// and returns a copy of the user whose bank lists them.
func (c *Client) FetchOrderTypes(ctx context.Context, session *Session) (*User, error) {
	ctx, op, err := c.begin(ctx, session, "HAA", ordertype.HAA)
	if err != nil {
		return nil, err
	}
	if err := op.requireKeys(false); err != nil {
		return nil, err
	}

	result, err := c.download(ctx, op, session.orderParams(nil))
	if err != nil {
		return nil, err
	}
	types, err := message.ParseHAAResponseOrderData(result.OrderData)
	if err != nil {
		return nil, op.fail(ErrProtocol, err)
	}
	op.logger.Info("order types received", "count", len(types))
	return session.User.WithBank(op.bank().WithOrderTypes(types)), nil
}
