package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Store persists benchmark runs between invocations.
type Store interface {
	Save(run Run) error
	LoadLatest(source string) (*Run, error)
	LoadAll() ([]Run, error)
	Close() error
}

// FileStore implements Store on a single JSON document.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}

// LoadAll returns every stored run ordered by timestamp.
func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Run{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Run{}, nil
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

// LoadLatest returns the newest run for source, or any source when empty.
// It returns nil without error when nothing matches.
func (s *FileStore) LoadLatest(source string) (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	return Latest(runs, source), nil
}

func (s *FileStore) Close() error { return nil }

// Latest picks the newest run for source from runs sorted by timestamp.
func Latest(runs []Run, source string) *Run {
	for i := len(runs) - 1; i >= 0; i-- {
		if source == "" || runs[i].Source == source {
			run := runs[i]
			return &run
		}
	}
	return nil
}
