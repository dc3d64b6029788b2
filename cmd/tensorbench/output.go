package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"tensorbench/internal/benchmark"
	"tensorbench/internal/db"
	"tensorbench/internal/metrics"

	"github.com/spf13/viper"
)

var (
	newStoreFunc  = db.NewStore
	gitCommitFunc = gitCommit
)

func storeConfig() db.StoreConfig {
	return db.StoreConfig{
		Type:             viper.GetString("history.type"),
		ConnectionString: viper.GetString("history.path"),
	}
}

func openStore() (benchmark.Store, error) {
	store, err := newStoreFunc(storeConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}

// saveRuns stamps each run with the current commit and persists it.
func saveRuns(w io.Writer, runs ...benchmark.Run) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	commit, err := gitCommitFunc()
	if err != nil {
		commit = ""
	}

	for _, run := range runs {
		run.Commit = commit
		if err := store.Save(run); err != nil {
			return fmt.Errorf("failed to save %s run: %w", run.Source, err)
		}
	}

	cfg := storeConfig()
	if cfg.Type == "" {
		cfg.Type = "json"
	}
	fmt.Fprintf(w, "\nResults saved to %s history\n", cfg.Type)
	return nil
}

// writeMetrics exports the records, and speedups when present, as a
// Prometheus textfile.
func writeMetrics(w io.Writer, path string, records []benchmark.Record, report *benchmark.Report) error {
	m := metrics.NewMetrics()
	m.Observe(records)
	if report != nil {
		m.ObserveSpeedups(report.ReferenceName, report.OtherName, report.Speedups())
	}

	if err := m.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	fmt.Fprintf(w, "Metrics written to %s\n", path)
	return nil
}

func gitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
