package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for a pipeline run
type Config struct {
	WorldURL     string        `json:"world_url"`
	SubmitURL    string        `json:"submit_url"`
	FixturesPath string        `json:"fixtures_path"`
	OpenBrowser  bool          `json:"open_browser"`
	RedisAddr    string        `json:"redis_addr"`
	CacheTTL     time.Duration `json:"cache_ttl"`
	MetricsAddr  string        `json:"metrics_addr"`
	LogLevel     string        `json:"log_level"`
	Workers      int           `json:"workers"`
	HTTPTimeout  time.Duration `json:"http_timeout"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		WorldURL:     "http://localhost:8080/world",
		SubmitURL:    "http://localhost:8080/generations",
		FixturesPath: "test-data.json",
		OpenBrowser:  true,
		CacheTTL:     10 * time.Minute,
		LogLevel:     "info",
		Workers:      0, // one per CPU
		HTTPTimeout:  30 * time.Second,
	}
}

// LoadConfig loads configuration from JSON file, returning the defaults when
// the file does not exist
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
