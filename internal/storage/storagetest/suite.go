// Package storagetest holds behaviour checks shared by every storage.KV backend.
package storagetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsmart/internal/storage"
)

// Run exercises kv against the storage.KV contract.
func Run(t *testing.T, kv storage.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "nobody", "token")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "s1", map[string]string{"token": "abc123", "user": `{"username":"alice"}`}))

		v, err := kv.Get(ctx, "s1", "token")
		require.NoError(t, err)
		assert.Equal(t, "abc123", v)

		v, err = kv.Get(ctx, "s1", "user")
		require.NoError(t, err)
		assert.Equal(t, `{"username":"alice"}`, v)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "s2", map[string]string{"token": "old"}))
		require.NoError(t, kv.Put(ctx, "s2", map[string]string{"token": "new"}))
		v, err := kv.Get(ctx, "s2", "token")
		require.NoError(t, err)
		assert.Equal(t, "new", v)
	})

	t.Run("scopes are isolated", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "a", map[string]string{"token": "ta"}))
		require.NoError(t, kv.Put(ctx, "b", map[string]string{"token": "tb"}))
		require.NoError(t, kv.Delete(ctx, "a", "token"))

		_, err := kv.Get(ctx, "a", "token")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		v, err := kv.Get(ctx, "b", "token")
		require.NoError(t, err)
		assert.Equal(t, "tb", v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, kv.Delete(ctx, "never-written", "token", "user"))
		require.NoError(t, kv.Put(ctx, "s3", map[string]string{"token": "x", "user": "{}"}))
		require.NoError(t, kv.Delete(ctx, "s3", "token"))
		require.NoError(t, kv.Delete(ctx, "s3", "token", "user"))
		_, err := kv.Get(ctx, "s3", "user")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, kv.Put(ctx, "busy", map[string]string{"token": "t", "user": "u"}))
			}()
		}
		wg.Wait()
		v, err := kv.Get(ctx, "busy", "user")
		require.NoError(t, err)
		assert.Equal(t, "u", v)
	})
}
