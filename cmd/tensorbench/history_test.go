package main

import (
	"path/filepath"
	"testing"
	"time"

	"tensorbench/internal/benchmark"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T) {
	t.Helper()
	viper.Set("history.type", "json")
	viper.Set("history.path", filepath.Join(t.TempDir(), "history.json"))

	store, err := openStore()
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	runs := []benchmark.Run{
		{Timestamp: base, Commit: "aaa111", Source: "C++ (Meta)", Records: []benchmark.Record{
			{Operation: "MatMul (4x4)", Source: "C++ (Meta)", Iterations: 1000, MeanUs: 1.25, MedianUs: 1.2},
		}},
		{Timestamp: base.Add(time.Minute), Source: "Go", Records: []benchmark.Record{
			{Operation: "MatMul (4x4)", Source: "Go", Iterations: 1000, MeanUs: 2.5, MedianUs: 2.4},
			{Operation: "ReLU (16)", Source: "Go", Iterations: 10000, MeanUs: 0.1, MedianUs: 0.1},
		}},
		{Timestamp: base.Add(time.Hour), Commit: "bbb222", Source: "C++ (Meta)"},
	}
	for _, run := range runs {
		require.NoError(t, store.Save(run))
	}
}

func TestHistoryCmd_List(t *testing.T) {
	setupCmdTest(t)
	seedHistory(t)

	out, _, err := executeCmd(t, newHistoryCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "2026-10-01 12:00:00")
	assert.Contains(t, out, "aaa111")
	assert.Contains(t, out, "bbb222")
}

func TestHistoryCmd_ListFiltered(t *testing.T) {
	setupCmdTest(t)
	seedHistory(t)

	out, _, err := executeCmd(t, newHistoryCmd(), "--source", "C++ (Meta)", "--limit", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "bbb222")
	assert.NotContains(t, out, "aaa111")
	assert.NotContains(t, out, "Go")
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupCmdTest(t)
	viper.Set("history.path", filepath.Join(t.TempDir(), "history.json"))

	out, _, err := executeCmd(t, newHistoryCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No benchmark history found.")
}

func TestHistoryCmd_Show(t *testing.T) {
	setupCmdTest(t)
	seedHistory(t)

	out, _, err := executeCmd(t, newHistoryCmd(), "show", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Go run at 2026-10-01 12:01:00 ===")

	// Stored runs print back in the format they were parsed from.
	records := benchmark.ParseOutput(out, "")
	require.Len(t, records, 2)
	assert.Equal(t, "MatMul (4x4)", records[0].Operation)
	assert.Equal(t, "Go", records[0].Source)
	assert.Equal(t, 2.5, records[0].MeanUs)
}

func TestHistoryCmd_ShowLatest(t *testing.T) {
	setupCmdTest(t)
	seedHistory(t)

	out, _, err := executeCmd(t, newHistoryCmd(), "show", "latest", "--source", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Go run at")

	out, _, err = executeCmd(t, newHistoryCmd(), "show", "latest")
	require.NoError(t, err)
	assert.Contains(t, out, "(bbb222)")
}

func TestHistoryCmd_ShowErrors(t *testing.T) {
	setupCmdTest(t)
	seedHistory(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Not A Number", []string{"show", "first"}, "invalid run index"},
		{"Out Of Range", []string{"show", "7"}, "out of range"},
		{"Unknown Source", []string{"show", "latest", "--source", "Rust"}, "no stored runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCmd(t, newHistoryCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
