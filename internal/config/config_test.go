package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cyberdash.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Interval() != 5*time.Minute {
		t.Errorf("expected default interval 5m, got %v", cfg.Refresh.Interval())
	}
	if cfg.Sources.NVDBaseURL == "" {
		t.Error("expected default NVD base URL")
	}
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8080

[refresh]
interval_minutes = 15
`)

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Interval() != 15*time.Minute {
		t.Errorf("expected interval 15m, got %v", cfg.Refresh.Interval())
	}
	// Untouched sections keep defaults
	if cfg.Cache.Dir != "./data/cache" {
		t.Errorf("expected default cache dir, got %s", cfg.Cache.Dir)
	}
}

func TestLoadFromFiles_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should be skipped, got %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_MalformedFileFails(t *testing.T) {
	path := writeConfig(t, "not [valid toml")

	if _, err := LoadFromFiles(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("CYBERDASH_PORT", "9999")
	t.Setenv("CYBERDASH_REFRESH_MINUTES", "2")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Interval() != 2*time.Minute {
		t.Errorf("expected env interval 2m, got %v", cfg.Refresh.Interval())
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7777, "127.0.0.1")
	if cfg.Server.Port != 7777 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("flag overrides not applied: %+v", cfg.Server)
	}

	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 7777 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("zero-value flags should not override: %+v", cfg.Server)
	}
}

func TestRefreshConfig_IntervalFallback(t *testing.T) {
	if got := (RefreshConfig{IntervalMinutes: 0}).Interval(); got != DefaultRefreshInterval {
		t.Errorf("expected fallback interval, got %v", got)
	}
	if got := (RefreshConfig{IntervalMinutes: -3}).Interval(); got != DefaultRefreshInterval {
		t.Errorf("expected fallback for negative interval, got %v", got)
	}
}

func TestLoadAssets_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.toml")
	content := `
[[assets]]
symbol = "BTC"
type = "crypto"

[[assets]]
symbol = "AAPL"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write asset file: %v", err)
	}

	assets, err := LoadAssets(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].Name != "BTC" {
		t.Errorf("expected name to default to symbol, got %s", assets[0].Name)
	}
	if assets[1].Type != "stock" || assets[1].Currency != "USD" {
		t.Errorf("expected stock/USD defaults, got %+v", assets[1])
	}
}

func TestLoadFeeds_MissingFileYieldsEmpty(t *testing.T) {
	feeds, err := LoadFeeds(filepath.Join(t.TempDir(), "feeds.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(feeds) != 0 {
		t.Errorf("expected empty feed list, got %d", len(feeds))
	}
}
