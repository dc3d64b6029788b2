package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helperTarget(t *testing.T, outcome string) Target {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("MOCK_BENCH_OUTCOME", outcome)

	return Target{
		Name: "helper",
		Path: exe,
		Args: []string{"-test.run=TestRunnerHelperProcess", "--"},
	}
}

func TestProcessRunner_Success(t *testing.T) {
	r := NewProcessRunner()

	out, err := r.Run(context.Background(), helperTarget(t, "pass"))
	require.NoError(t, err)

	// stderr is captured alongside stdout
	assert.Contains(t, out, "helper: starting")
	results := ParseOutput(out, "helper")
	require.Len(t, results, 1)
	assert.Equal(t, "MatMul (4x4)", results[0].Operation)
	assert.Equal(t, 1.5, results[0].MeanUs)
}

func TestProcessRunner_Failure(t *testing.T) {
	r := NewProcessRunner()

	out, err := r.Run(context.Background(), helperTarget(t, "fail"))
	require.Error(t, err)

	var perr *ProcessError
	require.True(t, errors.As(err, &perr))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, perr.Output, "boom")
	assert.Contains(t, out, "boom")
	assert.Contains(t, err.Error(), "error running helper benchmark")
}

func TestProcessRunner_NotFound(t *testing.T) {
	r := NewProcessRunner()
	target := Target{
		Name: "C++ (Meta)",
		Path: "./build/benchmark_cpp",
		Dir:  t.TempDir(),
	}

	_, err := r.Run(context.Background(), target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "./build/benchmark_cpp")
}

func TestProcessRunner_ResolvesAgainstDir(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("MOCK_BENCH_OUTCOME", "pass")

	target := Target{
		Name: "helper",
		Path: "." + string(filepath.Separator) + filepath.Base(exe),
		Args: []string{"-test.run=TestRunnerHelperProcess", "--"},
		Dir:  filepath.Dir(exe),
	}

	out, err := NewProcessRunner().Run(context.Background(), target)
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics:")
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "python3 benchmark_pytorch.py", Target{Path: "python3", Args: []string{"benchmark_pytorch.py"}}.String())
	assert.Equal(t, "./bench", Target{Path: "./bench"}.String())
}

func TestRunnerHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	fmt.Fprintln(os.Stderr, "helper: starting")
	if os.Getenv("MOCK_BENCH_OUTCOME") == "fail" {
		fmt.Println("boom")
		os.Exit(3)
	}
	fmt.Print("\nMatMul (4x4) Statistics:\n  Iterations: 1000\n  Mean:   1.500 μs\n  Median: 1.400 μs\n")
}
