package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tensorbench/internal/benchmark"
)

// sqlStore holds the queries shared by the SQLite and Postgres backends.
// placeholder renders the n-th (1-based) bind parameter for the dialect.
type sqlStore struct {
	db          *sql.DB
	placeholder func(n int) string
}

func (s *sqlStore) q(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(s.placeholder(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) insertRun(tx *sql.Tx, runID int64, run benchmark.Run) error {
	stmt, err := tx.Prepare(s.q(`INSERT INTO records
		(run_id, position, operation, source, iterations, mean_us, median_us, stddev_us, min_us, max_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range run.Records {
		if _, err := stmt.Exec(runID, i, r.Operation, r.Source, r.Iterations, r.MeanUs, r.MedianUs, r.StdDevUs, r.MinUs, r.MaxUs); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", r.Operation, err)
		}
	}
	return nil
}

// LoadAll returns every stored run ordered by timestamp.
func (s *sqlStore) LoadAll() ([]benchmark.Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, commit_hash, source FROM runs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		ids  []int64
		runs []benchmark.Run
	)
	for rows.Next() {
		var (
			id  int64
			run benchmark.Run
		)
		if err := rows.Scan(&id, &run.Timestamp, &run.Commit, &run.Source); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		records, err := s.loadRecords(id)
		if err != nil {
			return nil, err
		}
		runs[i].Records = records
	}

	if runs == nil {
		runs = []benchmark.Run{}
	}
	return runs, nil
}

func (s *sqlStore) loadRecords(runID int64) ([]benchmark.Record, error) {
	rows, err := s.db.Query(s.q(`SELECT operation, source, iterations, mean_us, median_us, stddev_us, min_us, max_us
		FROM records WHERE run_id = ? ORDER BY position ASC`), runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []benchmark.Record
	for rows.Next() {
		var r benchmark.Record
		if err := rows.Scan(&r.Operation, &r.Source, &r.Iterations, &r.MeanUs, &r.MedianUs, &r.StdDevUs, &r.MinUs, &r.MaxUs); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadLatest returns the newest run for source, or any source when empty.
func (s *sqlStore) LoadLatest(source string) (*benchmark.Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	return benchmark.Latest(runs, source), nil
}

func timestamp(run benchmark.Run) time.Time {
	if run.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return run.Timestamp.UTC()
}
