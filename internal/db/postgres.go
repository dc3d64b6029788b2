package db

import (
	"database/sql"
	"fmt"
	"strconv"

	"tensorbench/internal/benchmark"

	_ "github.com/lib/pq"
)

// PostgresStore implements benchmark.Store using PostgreSQL
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects to dsn and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{sqlStore{db: db, placeholder: func(n int) string { return "$" + strconv.Itoa(n) }}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			commit_hash TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			operation TEXT NOT NULL,
			source TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			mean_us DOUBLE PRECISION NOT NULL,
			median_us DOUBLE PRECISION NOT NULL,
			stddev_us DOUBLE PRECISION NOT NULL,
			min_us DOUBLE PRECISION NOT NULL,
			max_us DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Save stores a run and its records in a single transaction
func (s *PostgresStore) Save(run benchmark.Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRow(`INSERT INTO runs (created_at, commit_hash, source) VALUES ($1, $2, $3) RETURNING id`,
		timestamp(run), run.Commit, run.Source).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := s.insertRun(tx, runID, run); err != nil {
		return err
	}
	return tx.Commit()
}
