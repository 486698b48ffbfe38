// Package config gathers settings from the environment and an optional
// config file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the library and the command line tool.
type Config struct {
	// Debug reports unrecognized descriptor keys. Bound to PMUDEBUG.
	Debug  bool
	// Tables is a directory holding a mapfile.csv table tree that replaces
	// the compiled-in tables. Bound to PMC_TABLES.
	Tables string
	// CPUID overrides the host's CPU model key. Bound to PMC_CPUID.
	CPUID  string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("tables", "")
	v.SetDefault("cpuid", "")

	v.SetEnvPrefix("PMC")
	v.AutomaticEnv()
	// The debug toggle predates the prefix.
	v.BindEnv("debug", "PMUDEBUG")
	return v
}

// Load reads the config file at path, if any, and overlays the environment.
// Only a missing or unreadable file is an error.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v), nil
}

// fromViper reads each key on its own. A debug value that is not a boolean
// reads as false and leaves the other keys intact.
func fromViper(v *viper.Viper) *Config {
	return &Config{
		Debug:  v.GetBool("debug"),
		Tables: v.GetString("tables"),
		CPUID:  v.GetString("cpuid"),
	}
}

// FromEnv returns the configuration given by the environment alone.
func FromEnv() *Config {
	return fromViper(newViper())
}
