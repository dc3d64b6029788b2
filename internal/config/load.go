package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TENSORBENCH_COMPARE_NATIVE_PATH.
const EnvPrefix = "TENSORBENCH"

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; a malformed one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("tensorbench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	viper.SetDefault("run.tag", "Go")
	viper.SetDefault("run.scale", 1.0)
	viper.SetDefault("run.seed", 42)

	viper.SetDefault("compare.native.name", "C++ (Meta)")
	viper.SetDefault("compare.native.path", "./build/benchmark_cpp")
	viper.SetDefault("compare.native.args", []string{})
	viper.SetDefault("compare.native.dir", ".")

	// An empty runner path means this executable.
	viper.SetDefault("compare.runner.name", "Go")
	viper.SetDefault("compare.runner.path", "")
	viper.SetDefault("compare.runner.args", []string{"run"})
	viper.SetDefault("compare.runner.dir", ".")

	viper.SetDefault("compare.timeout", "0s")
	viper.SetDefault("compare.format", "table")

	viper.SetDefault("history.type", "json")
	viper.SetDefault("history.path", "")

	viper.SetDefault("metrics.file", "")

	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#benchmarks")
}
