package config

import "time"

// DefaultRefreshInterval is used when no interval is configured. It matches
// the 5-minute background cadence the dashboard has always run with.
const DefaultRefreshInterval = 5 * time.Minute

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		Refresh: RefreshConfig{
			IntervalMinutes: 5,
		},
		Cache: CacheConfig{
			Dir: "./data/cache",
		},
		Sources: SourcesConfig{
			FeedsFile:     "config/feeds.toml",
			MarketsFile:   "config/markets.toml",
			ShortcutsFile: "config/shortcuts.toml",
			NVDBaseURL:    "https://services.nvd.nist.gov/rest/json/cves/2.0",
			IncidentsURL:  "https://api.ransomware.live/v2/recentvictims",
			CoinGeckoURL:  "https://api.coingecko.com/api/v3",
			QuotesURL:     "https://query1.finance.yahoo.com",
		},
		UI: UIConfig{
			Accent:     "#e63a30",
			Background: "#181a1b",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "./logs/cyberdash.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
