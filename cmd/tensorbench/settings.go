package main

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flags override configuration only when given explicitly. Several commands
// share a configuration key, so flags are not bound to viper.

func stringSetting(flags *pflag.FlagSet, name, key string) string {
	if flags.Changed(name) {
		v, _ := flags.GetString(name)
		return v
	}
	return viper.GetString(key)
}

func floatSetting(flags *pflag.FlagSet, name, key string) float64 {
	if flags.Changed(name) {
		v, _ := flags.GetFloat64(name)
		return v
	}
	return viper.GetFloat64(key)
}

func uint64Setting(flags *pflag.FlagSet, name, key string) uint64 {
	if flags.Changed(name) {
		v, _ := flags.GetUint64(name)
		return v
	}
	return viper.GetUint64(key)
}

func durationSetting(flags *pflag.FlagSet, name, key string) time.Duration {
	if flags.Changed(name) {
		v, _ := flags.GetDuration(name)
		return v
	}
	return viper.GetDuration(key)
}
