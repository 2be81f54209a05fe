// Package config loads gardenwatch settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/example/gardenwatch/internal/adapters/notify"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// dataDirName is created under the home directory when no data dir is set.
const dataDirName = ".gardenwatch"

type Config struct {
	APIURL    string `env:"GARDENWATCH_API_URL" default:"https://gagapi.onrender.com"`
	Storage   string `env:"GARDENWATCH_STORAGE" default:"sqlite"`
	DataDir   string `env:"GARDENWATCH_DATA_DIR"`
	RedisURL  string `env:"REDIS_URL"`
	HTTPAddr  string `env:"GARDENWATCH_HTTP_ADDR" default:"127.0.0.1:8787"`
	Notifiers string `env:"GARDENWATCH_NOTIFIERS" default:"console,desktop"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" default:"10s"`
	RetryInterval     time.Duration `env:"RETRY_INTERVAL" default:"15s"`
	TickInterval      time.Duration `env:"TICK_INTERVAL" default:"1s"`
	BoundaryTolerance time.Duration `env:"BOUNDARY_TOLERANCE" default:"5s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultDataDir returns ~/.gardenwatch.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dataDirName), nil
}

// NotifierNames returns the configured notifier names, trimmed and without blanks.
func (c *Config) NotifierNames() []string {
	var names []string
	for _, n := range strings.Split(c.Notifiers, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func validate(cfg *Config) error {
	switch cfg.Storage {
	case StorageSQLite:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return errors.New("REDIS_URL is required when GARDENWATCH_STORAGE is redis")
		}
	default:
		return fmt.Errorf("GARDENWATCH_STORAGE must be %q or %q, got %q", StorageSQLite, StorageRedis, cfg.Storage)
	}

	if cfg.APIURL == "" {
		return errors.New("GARDENWATCH_API_URL is required")
	}

	for _, n := range cfg.NotifierNames() {
		if !notify.Known(n) {
			return fmt.Errorf("GARDENWATCH_NOTIFIERS: unknown notifier %q", n)
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"FETCH_TIMEOUT", cfg.FetchTimeout},
		{"RETRY_INTERVAL", cfg.RetryInterval},
		{"TICK_INTERVAL", cfg.TickInterval},
		{"BOUNDARY_TOLERANCE", cfg.BoundaryTolerance},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if cfg.BoundaryTolerance >= time.Minute {
		return fmt.Errorf("BOUNDARY_TOLERANCE must be under a minute, got %s", cfg.BoundaryTolerance)
	}

	return nil
}
