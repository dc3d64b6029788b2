package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"tensorbench/internal/benchmark"
	"tensorbench/internal/config"
	"tensorbench/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []benchmark.Target
	// block makes Run wait for cancellation.
	block bool
}

func (m *mockRunner) Run(ctx context.Context, target benchmark.Target) (string, error) {
	m.calls = append(m.calls, target)
	if m.block {
		<-ctx.Done()
		return "partial output\n", &benchmark.ProcessError{Name: target.Name, Path: target.Path, Output: "partial output\n", Err: ctx.Err()}
	}
	return m.outputs[target.Name], m.errs[target.Name]
}

type mockStore struct {
	saved []benchmark.Run
}

func (m *mockStore) Save(run benchmark.Run) error {
	m.saved = append(m.saved, run)
	return nil
}

func (m *mockStore) LoadLatest(source string) (*benchmark.Run, error) {
	return benchmark.Latest(m.saved, source), nil
}

func (m *mockStore) LoadAll() ([]benchmark.Run, error) {
	return m.saved, nil
}

func (m *mockStore) Close() error { return nil }

type mockNotifier struct {
	summary string
	details string
	err     error
}

func (m *mockNotifier) Notify(ctx context.Context, summary, details string) (string, error) {
	m.summary = summary
	m.details = details
	return "1700000000.000100", m.err
}

// setupCmdTest installs default configuration and restores every test seam
// afterwards.
func setupCmdTest(t *testing.T) {
	t.Helper()

	viper.Reset()
	config.SetDefaults()

	origRunner := newRunnerFunc
	origStore := newStoreFunc
	origNotifier := newNotifierFunc
	origExecutable := executableFunc
	origCommit := gitCommitFunc
	origSuite := newSuiteFunc

	gitCommitFunc = func() (string, error) { return "abc123", nil }
	executableFunc = func() (string, error) { return "/usr/local/bin/tensorbench", nil }

	t.Cleanup(func() {
		newRunnerFunc = origRunner
		newStoreFunc = origStore
		newNotifierFunc = origNotifier
		executableFunc = origExecutable
		gitCommitFunc = origCommit
		newSuiteFunc = origSuite
		viper.Reset()
	})
}

func useStore(store benchmark.Store) {
	newStoreFunc = func(db.StoreConfig) (benchmark.Store, error) { return store, nil }
}

// statsOutput renders blocks the way a benchmark executable prints them.
func statsOutput(t *testing.T, tag string, means map[string]float64) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("========================================\n")
	for op, mean := range means {
		err := benchmark.WriteStatistics(&buf, op+" - "+tag, 100, benchmark.Summary{
			Count: 100, Mean: mean, Median: mean, StdDev: mean / 10, Min: mean / 2, Max: mean * 2,
		})
		require.NoError(t, err)
	}
	return buf.String()
}

func executeCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
