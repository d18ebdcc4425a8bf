// Package storagetest checks storage.Store implementations against the
// behaviour the registry relies on.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-ebics/internal/storage"
)

// Run exercises s. The store must be empty.
func Run(t *testing.T, s storage.Store) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, storage.KindUser, "nobody")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("PutGetReplace", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, storage.KindBank, "EBIXHOST", []byte(`{"v":1}`)))
		got, err := s.Get(ctx, storage.KindBank, "EBIXHOST")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":1}`), got)

		require.NoError(t, s.Put(ctx, storage.KindBank, "EBIXHOST", []byte(`{"v":2}`)))
		got, err = s.Get(ctx, storage.KindBank, "EBIXHOST")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":2}`), got)
	})

	t.Run("KindsAreSeparate", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, storage.KindPartner, "SAME", []byte("partner")))
		require.NoError(t, s.Put(ctx, storage.KindUser, "SAME", []byte("user")))
		got, err := s.Get(ctx, storage.KindPartner, "SAME")
		require.NoError(t, err)
		assert.Equal(t, []byte("partner"), got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, storage.KindUser, "B", []byte("b")))
		require.NoError(t, s.Put(ctx, storage.KindUser, "A", []byte("a")))
		ids, err := s.List(ctx, storage.KindUser)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "SAME"}, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, storage.KindUser, "A"))
		_, err := s.Get(ctx, storage.KindUser, "A")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, storage.KindUser, "A"), storage.ErrNotFound)
	})

	t.Run("InvalidKeys", func(t *testing.T) {
		assert.Error(t, s.Put(ctx, storage.Kind("order"), "X", nil))
		assert.Error(t, s.Put(ctx, storage.KindUser, "", nil))
		assert.Error(t, s.Put(ctx, storage.KindUser, "../escape", nil))
	})

	t.Run("ConcurrentPut", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, s.Put(ctx, storage.KindBank, "HOT", []byte(fmt.Sprintf("writer-%d", i))))
			}(i)
		}
		wg.Wait()
		got, err := s.Get(ctx, storage.KindBank, "HOT")
		require.NoError(t, err)
		assert.Contains(t, string(got), "writer-")
	})
}
