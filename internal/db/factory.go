package db

import (
	"fmt"
	"strings"

	"tensorbench/internal/benchmark"
)

// DefaultSQLitePath is used when a SQLite store has no connection string.
const DefaultSQLitePath = ".tensorbench/history.db"

// DefaultJSONPath is used when a JSON store has no connection string.
const DefaultJSONPath = ".tensorbench/history.json"

// StoreConfig holds configuration for the history backend
type StoreConfig struct {
	Type             string // "json", "sqlite" or "postgres"
	ConnectionString string // File path for JSON/SQLite, DSN for Postgres
}

// NewStore creates a benchmark history store based on the provided configuration
func NewStore(config StoreConfig) (benchmark.Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultJSONPath
		}
		return benchmark.NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// SupportedTypes lists the accepted StoreConfig.Type values.
func SupportedTypes() []string {
	return []string{"json", "sqlite", "sqlite3", "postgres", "postgresql"}
}
