// Package storage provides the record store behind the EBICS registry.
//
// # Interface Design
//
// A [Store] keeps opaque records addressed by kind and id. The registry
// encodes banks, partners and users as JSON; stores never look inside.
//
//   - [KindBank]: records keyed by host id
//   - [KindPartner]: records keyed by partner id
//   - [KindUser]: records keyed by user id
//
// # Implementations
//
//   - file: one JSON file per record, replaced atomically
//   - boltdb: an embedded BoltDB database, one bucket per kind
//   - mongodb: a MongoDB collection, replaced with upserts
//
// # Concurrency
//
// All store implementations must be safe for concurrent use from multiple
// goroutines, and Put must replace a record atomically.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind names a record type
type Kind string

const (
	KindBank    Kind = "bank"
	KindPartner Kind = "partner"
	KindUser    Kind = "user"
)

// Kinds lists every record kind
var Kinds = []Kind{KindBank, KindPartner, KindUser}

// ErrNotFound is returned by Get and Delete for a missing record
var ErrNotFound = errors.New("record not found")

// Store persists records
type Store interface {
	// Put creates or replaces a record
	Put(ctx context.Context, kind Kind, id string, data []byte) error

	// Get returns a record or ErrNotFound
	Get(ctx context.Context, kind Kind, id string) ([]byte, error)

	// Delete removes a record or returns ErrNotFound
	Delete(ctx context.Context, kind Kind, id string) error

	// List returns the ids of all records of a kind, sorted
	List(ctx context.Context, kind Kind) ([]string, error)

	// Close releases storage resources
	Close(ctx context.Context) error
}

// Validate checks kind and id before they are used as a key or file name.
func Validate(kind Kind, id string) error {
	switch kind {
	case KindBank, KindPartner, KindUser:
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	if id == "" {
		return fmt.Errorf("record id is required")
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`+"\x00") {
		return fmt.Errorf("invalid record id %q", id)
	}
	return nil
}
