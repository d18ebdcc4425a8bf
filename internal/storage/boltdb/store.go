// Package boltdb implements storage.Store on an embedded BoltDB file with
// one bucket per record kind.
package boltdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/sirosfoundation/go-ebics/internal/storage"
)

// Store keeps records in a BoltDB database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path and ensures a bucket exists
// for every record kind.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, kind := range storage.Kinds {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return fmt.Errorf("creating bucket %s: %w", kind, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func bucket(tx *bolt.Tx, kind storage.Kind) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(kind))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", kind)
	}
	return b, nil
}

// Put stores the record in the kind's bucket in one update transaction.
func (s *Store) Put(_ context.Context, kind storage.Kind, id string, data []byte) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, kind)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}

// Get returns a copy of the record, or storage.ErrNotFound.
func (s *Store) Get(_ context.Context, kind storage.Kind, id string) ([]byte, error) {
	if err := storage.Validate(kind, id); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, kind)
		if err != nil {
			return err
		}
		v := b.Get([]byte(id))
		if v == nil {
			return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
		}
		// v is only valid inside the transaction
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete removes a record, returning storage.ErrNotFound if it does not exist.
func (s *Store) Delete(_ context.Context, kind storage.Kind, id string) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, kind)
		if err != nil {
			return err
		}
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
		}
		return b.Delete([]byte(id))
	})
}

// List returns ids in key order, which BoltDB keeps sorted.
func (s *Store) List(_ context.Context, kind storage.Kind) ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, kind)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}

// Close closes the database file.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
