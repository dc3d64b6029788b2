package db

import (
	"path/filepath"
	"testing"

	"tensorbench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStore(StoreConfig{Type: "sqlite", ConnectionString: dbPath})
	require.NoError(t, err)
	_, ok := store.(*SQLiteStore)
	assert.True(t, ok, "Expected a SQLiteStore instance")
	store.Close()

	store, err = NewStore(StoreConfig{Type: "SQLite3", ConnectionString: dbPath})
	require.NoError(t, err)
	_, ok = store.(*SQLiteStore)
	assert.True(t, ok)
	store.Close()
}

func TestNewStore_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	store, err := NewStore(StoreConfig{ConnectionString: path})
	require.NoError(t, err)
	_, ok := store.(*benchmark.FileStore)
	assert.True(t, ok, "Expected a FileStore for the default type")

	store, err = NewStore(StoreConfig{Type: "json", ConnectionString: path})
	require.NoError(t, err)
	_, ok = store.(*benchmark.FileStore)
	assert.True(t, ok)
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(StoreConfig{Type: "postgres"})
	assert.ErrorContains(t, err, "postgres connection string is required")

	_, err = NewStore(StoreConfig{Type: "mongo"})
	assert.ErrorContains(t, err, "unsupported store type: mongo")
}
