// Package file implements storage.Store as a directory of JSON files.
//
// Records live in <dir>/<kind>/<id>.json. Writes go to a temporary file
// that is renamed over the target, so readers never see a partial record.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirosfoundation/go-ebics/internal/storage"
)

const (
	dirMode  os.FileMode = 0o700
	fileMode os.FileMode = 0o600
	suffix               = ".json"
)

// Store keeps records in a directory tree.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore opens or creates a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	for _, kind := range storage.Kinds {
		if err := os.MkdirAll(filepath.Join(dir, string(kind)), dirMode); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(kind storage.Kind, id string) string {
	return filepath.Join(s.dir, string(kind), id+suffix)
}

// Put writes the record atomically, replacing any previous version.
func (s *Store) Put(_ context.Context, kind storage.Kind, id string, data []byte) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := WriteAtomic(s.path(kind, id), data, fileMode); err != nil {
		return fmt.Errorf("storing %s %s: %w", kind, id, err)
	}
	return nil
}

// Get reads a record, returning storage.ErrNotFound if it does not exist.
func (s *Store) Get(_ context.Context, kind storage.Kind, id string) ([]byte, error) {
	if err := storage.Validate(kind, id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path(kind, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s %s: %w", kind, id, err)
	}
	return data, nil
}

// Delete removes a record, returning storage.ErrNotFound if it does not exist.
func (s *Store) Delete(_ context.Context, kind storage.Kind, id string) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(kind, id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return err
}

// List returns the sorted ids of all records of a kind.
func (s *Store) List(_ context.Context, kind storage.Kind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(filepath.Join(s.dir, string(kind)))
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", kind, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, suffix))
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// WriteAtomic writes b to a temporary file in path's directory and renames
// it over path. On error path is left untouched.
func WriteAtomic(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
