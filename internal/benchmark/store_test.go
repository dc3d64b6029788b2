package benchmark

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "history.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	// LoadAll on a missing file
	runs, err := store.LoadAll()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.LoadLatest("")
	assert.NoError(t, err)
	assert.Nil(t, latest)

	// Saved out of order on purpose
	run2 := Run{
		Timestamp: time.Now(),
		Commit:    "def",
		Source:    "Go",
		Records:   []Record{{Operation: "Add (16)", MeanUs: 0.1}},
	}
	run1 := Run{
		Timestamp: time.Now().Add(-1 * time.Hour),
		Commit:    "abc",
		Source:    "C++ (Meta)",
		Records:   []Record{{Operation: "Add (16)", MeanUs: 0.05}},
	}
	require.NoError(t, store.Save(run2))
	require.NoError(t, store.Save(run1))

	runs, err = store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "abc", runs[0].Commit)
	assert.Equal(t, "def", runs[1].Commit)

	latest, err = store.LoadLatest("")
	require.NoError(t, err)
	assert.Equal(t, "def", latest.Commit)

	latest, err = store.LoadLatest("C++ (Meta)")
	require.NoError(t, err)
	assert.Equal(t, "abc", latest.Commit)
	assert.Equal(t, 0.05, latest.Records[0].MeanUs)

	latest, err = store.LoadLatest("PyTorch")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadAll()
	assert.ErrorContains(t, err, "failed to unmarshal runs")

	err = store.Save(Run{})
	assert.Error(t, err)
}
