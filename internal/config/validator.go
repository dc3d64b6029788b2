package config

import (
	"fmt"
	"slices"
	"strings"

	"tensorbench/internal/db"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var formats = []string{"table", "markdown", "json"}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet("run.scale") {
		scale, err := cast.ToFloat64E(viper.Get("run.scale"))
		if err != nil || scale <= 0 {
			errors = append(errors, fmt.Sprintf("run.scale must be positive, got: %v", viper.Get("run.scale")))
		}
	}

	if viper.IsSet("compare.timeout") {
		timeout, err := cast.ToDurationE(viper.Get("compare.timeout"))
		if err != nil || timeout < 0 {
			errors = append(errors, fmt.Sprintf("compare.timeout must be a non-negative duration, got: %v", viper.Get("compare.timeout")))
		}
	}

	if viper.IsSet("history.type") {
		t := strings.ToLower(viper.GetString("history.type"))
		historyTypes := db.SupportedTypes()
		if !slices.Contains(historyTypes, t) {
			errors = append(errors, fmt.Sprintf("history.type must be one of %s, got: %q", strings.Join(historyTypes, ", "), t))
		}
		if (t == "postgres" || t == "postgresql") && viper.GetString("history.path") == "" {
			errors = append(errors, "history.path must hold a DSN when history.type is postgres")
		}
	}

	if viper.IsSet("compare.format") {
		f := strings.ToLower(viper.GetString("compare.format"))
		if !slices.Contains(formats, f) {
			errors = append(errors, fmt.Sprintf("compare.format must be one of %s, got: %q", strings.Join(formats, ", "), f))
		}
	}

	if viper.IsSet("compare.native.path") && viper.GetString("compare.native.path") == "" {
		errors = append(errors, "compare.native.path must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
