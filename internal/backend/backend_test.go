package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/config"
	"budget/internal/ledger/memory"
	"budget/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    Config
		wantErr bool
	}{
		{"nil", nil, Config{}, true},
		{"sqlite", &config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db"}, Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"memory", &config.Config{DataBackend: "memory"}, Config{Type: MemoryBackend}, false},
		{"postgres", &config.Config{DataBackend: "postgres"}, Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAppConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "bogus"}.Validate())
}

func TestFactoryOpen(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	store, err := f.Open(ctx, Config{Type: MemoryBackend})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	require.NoError(t, store.Close())

	store, err = f.Open(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteRepository{}, store)
	require.NoError(t, store.Close())

	_, err = f.Open(ctx, Config{Type: SQLiteBackend})
	assert.Error(t, err)
}
