// Package config loads showcase settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the showcase server settings.
type Config struct {
	Environment string
	Addr        string
	// Key signs and encrypts component props. Empty means a random key per
	// process.
	Key         []byte
	CatalogSize int
	PerPage     int
	LogLevel    string
}

// Production reports whether GO_ENV is "production".
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Load reads configuration from environment variables. Outside production
// it first loads files (default ".env"); a missing file is not an error
// since the environment alone is enough.
func Load(files ...string) (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file: %w", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Addr:        os.Getenv("HXUI_ADDR"),
		Key:         []byte(os.Getenv("HXUI_KEY")),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if len(cfg.Key) == 0 {
		cfg.Key = nil
	}

	var err error
	if cfg.CatalogSize, err = intEnv("HXUI_CATALOG_SIZE", 95, 0); err != nil {
		return nil, err
	}
	if cfg.PerPage, err = intEnv("HXUI_PER_PAGE", 10, 1); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intEnv(name string, def, lowest int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	if n < lowest {
		return 0, fmt.Errorf("config: %s must be at least %d, got %d", name, lowest, n)
	}
	return n, nil
}
