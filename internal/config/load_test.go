package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		require.NoError(t, Load(""))

		assert.Equal(t, "./build/benchmark_cpp", viper.GetString("compare.native.path"))
		assert.Equal(t, []string{"run"}, viper.GetStringSlice("compare.runner.args"))
		assert.Equal(t, "Go", viper.GetString("run.tag"))
		assert.Equal(t, 1.0, viper.GetFloat64("run.scale"))
		assert.Equal(t, "json", viper.GetString("history.type"))
		assert.Equal(t, "#benchmarks", viper.GetString("notifications.slack.channel"))
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("TENSORBENCH_COMPARE_NATIVE_PATH", "/opt/bench/native")

		require.NoError(t, Load(""))
		assert.Equal(t, "/opt/bench/native", viper.GetString("compare.native.path"))
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		t.Chdir(dir)
		cfg := "compare:\n  native:\n    path: ../native/bench\n    dir: ..\nrun:\n  scale: 0.5\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tensorbench.yaml"), []byte(cfg), 0644))

		require.NoError(t, Load(""))
		assert.Equal(t, "../native/bench", viper.GetString("compare.native.path"))
		assert.Equal(t, "..", viper.GetString("compare.native.dir"))
		assert.Equal(t, 0.5, viper.GetFloat64("run.scale"))
		// untouched keys keep their defaults
		assert.Equal(t, "C++ (Meta)", viper.GetString("compare.native.name"))
	})

	t.Run("Explicit Missing File", func(t *testing.T) {
		viper.Reset()
		err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config")
	})
}
