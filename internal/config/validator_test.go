package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name: "Valid Configuration",
			setup: func() {
				SetDefaults()
				viper.Set("run.scale", 0.25)
				viper.Set("compare.timeout", "90s")
				viper.Set("history.type", "sqlite")
			},
			wantError: false,
		},
		{
			name: "Invalid Scale",
			setup: func() {
				viper.Set("run.scale", 0)
			},
			wantError: true,
			errMsg:    "run.scale must be positive",
		},
		{
			name: "Non-numeric Scale",
			setup: func() {
				viper.Set("run.scale", "fast")
			},
			wantError: true,
			errMsg:    "run.scale must be positive",
		},
		{
			name: "Negative Timeout",
			setup: func() {
				viper.Set("compare.timeout", "-5s")
			},
			wantError: true,
			errMsg:    "compare.timeout must be a non-negative duration",
		},
		{
			name: "Unknown History Type",
			setup: func() {
				viper.Set("history.type", "mongo")
			},
			wantError: true,
			errMsg:    "history.type must be one of",
		},
		{
			name: "Postgres Without DSN",
			setup: func() {
				viper.Set("history.type", "postgres")
			},
			wantError: true,
			errMsg:    "history.path must hold a DSN",
		},
		{
			name: "Unknown Format",
			setup: func() {
				viper.Set("compare.format", "html")
			},
			wantError: true,
			errMsg:    "compare.format must be one of",
		},
		{
			name: "Empty Native Path",
			setup: func() {
				viper.Set("compare.native.path", "")
			},
			wantError: true,
			errMsg:    "compare.native.path must not be empty",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				viper.Set("run.scale", -1)
				viper.Set("compare.format", "html")
			},
			wantError: true,
			errMsg:    "got: -1\n  compare.format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setup()

			err := ValidateConfig()
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateConfig() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateConfig() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
	viper.Reset()
}
