// Package config loads settings for the pqsort command.
// Values come from built-in defaults, an optional pqsort.yaml and PQSORT_ environment
// variables, in increasing order of precedence. Command line flags override all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the pqsort command.
type Config struct {
	// DBPath is the dataset store; a .bolt extension selects bbolt, anything else SQLite.
	DBPath string `mapstructure:"db_path"`
	// Workers is the requested pool size; 0 means one per CPU.
	Workers int `mapstructure:"workers"`
	// Seed seeds dataset generation.
	Seed int64 `mapstructure:"seed"`
	// Verbose enables progress logging.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DBPath:  "dane.db",
		Workers: 0,
		Seed:    42,
		Verbose: false,
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("verbose", d.Verbose)
}

// Load reads pqsort.yaml from the working directory or the user config directory,
// then applies PQSORT_ environment variables. A missing config file is not an error.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("pqsort")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PQSORT")
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.DBPath = os.ExpandEnv(cfg.DBPath)
	return cfg, nil
}

// userConfigDir returns the XDG config directory for pqsort.
func userConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "pqsort")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "pqsort")
	}
	return filepath.Join(home, ".config", "pqsort")
}
