// Package config resolves where the diary lives and how the CLI behaves from
// the environment. The store only ever sees the resolved path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultFileName is the database file created in the home directory when
// DIDI_URL is not set.
const DefaultFileName = "digital_diary.sqlite"

type Config struct {
	DBPath   string `env:"DIDI_URL"`
	LogLevel string `env:"DIDI_LOG_LEVEL" envDefault:"warn"`
	NoColor  string `env:"NO_COLOR"`
}

// Load reads an optional .env file from the working directory, then the
// process environment, and fills defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("couldn't retrieve home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, DefaultFileName)
	}

	return cfg, nil
}

// Color reports whether colored output is allowed (see no-color.org).
func (c *Config) Color() bool {
	return c.NoColor == ""
}
