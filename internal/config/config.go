// Package config loads cyberdash configuration from TOML files with
// defaults -> files -> env -> flags layering.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Refresh RefreshConfig `toml:"refresh"`
	Cache   CacheConfig   `toml:"cache"`
	Sources SourcesConfig `toml:"sources"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// RefreshConfig contains the cache refresh interval.
type RefreshConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

// Interval returns the refresh interval as a duration, falling back to the
// default when the configured value is not positive.
func (r RefreshConfig) Interval() time.Duration {
	if r.IntervalMinutes <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(r.IntervalMinutes) * time.Minute
}

// CacheConfig contains cache store settings.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// SourcesConfig points at the auxiliary list files and upstream endpoints.
type SourcesConfig struct {
	FeedsFile     string `toml:"feeds_file"`
	MarketsFile   string `toml:"markets_file"`
	ShortcutsFile string `toml:"shortcuts_file"`

	NVDBaseURL   string `toml:"nvd_base_url"`
	IncidentsURL string `toml:"incidents_url"`
	CoinGeckoURL string `toml:"coingecko_base_url"`
	QuotesURL    string `toml:"quotes_base_url"`
}

// UIConfig contains optional dashboard color overrides.
type UIConfig struct {
	Accent     string `toml:"accent"`
	Background string `toml:"background"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies CYBERDASH_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("CYBERDASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CYBERDASH_HOST"); host != "" {
		config.Server.Host = host
	}
	if dir := os.Getenv("CYBERDASH_CACHE_DIR"); dir != "" {
		config.Cache.Dir = dir
	}
	if mins := os.Getenv("CYBERDASH_REFRESH_MINUTES"); mins != "" {
		if m, err := strconv.Atoi(mins); err == nil && m > 0 {
			config.Refresh.IntervalMinutes = m
		}
	}
	if level := os.Getenv("CYBERDASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
