package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/internal/storage"
	"github.com/sirosfoundation/go-ebics/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	storagetest.Run(t, s)
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), storage.KindUser, "USER1", []byte("{}")))

	entries, err := os.ReadDir(filepath.Join(dir, "user"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "USER1.json", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "statement.xml")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	require.NoError(t, WriteAtomic(target, []byte("<Document/>"), 0o600))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<Document/>", string(data))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a rename over a non-empty directory fails after the data is written
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o700))
	assert.Error(t, WriteAtomic(blocked, []byte("data"), 0o600))
	info, err = os.Stat(blocked)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}
