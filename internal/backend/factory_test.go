package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsmart/internal/config"
	"spendsmart/internal/storage"
)

func TestFactoryCreate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "sqlite", config: Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "s.db")}},
		{name: "bolt", config: Config{Type: BoltBackend, BoltDBPath: filepath.Join(dir, "s.bolt")}},
		{name: "memory", config: Config{Type: MemoryBackend}},
		{name: "sqlite without path", config: Config{Type: SQLiteBackend}, wantErr: true},
		{name: "bolt without path", config: Config{Type: BoltBackend}, wantErr: true},
		{name: "unknown type", config: Config{Type: "sheets"}, wantErr: true},
	}

	f := NewFactory(nil)
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.Create(ctx, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer res.Cleanup()

			require.NoError(t, res.KV.Put(ctx, "sid", map[string]string{"token": "abc"}))
			_, err = res.KV.Get(ctx, "sid", "user")
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{SessionBackend: "bolt", BoltDBPath: "/tmp/x.bolt"})
	require.NoError(t, err)
	assert.Equal(t, BoltBackend, cfg.Type)
	assert.Equal(t, "/tmp/x.bolt", cfg.BoltDBPath)

	_, err = FromAppConfig(&config.Config{SessionBackend: "sheets"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.IsValid(), typ.String())
	}
	assert.False(t, Type("").IsValid())
}
