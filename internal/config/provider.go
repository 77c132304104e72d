package config

import (
	"os"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// IntervalProvider reports the current refresh interval. It is consulted on
// every freshness check and every background cycle, so operators can change
// the interval without a restart.
type IntervalProvider interface {
	RefreshInterval() time.Duration
}

// StaticInterval is a fixed-interval provider, used by tests and as a
// fallback when no config file is available.
type StaticInterval time.Duration

// RefreshInterval returns the fixed interval.
func (s StaticInterval) RefreshInterval() time.Duration { return time.Duration(s) }

// FileIntervalProvider re-reads the refresh interval from a TOML config
// file. The file is only re-parsed when its modification time changes, so
// calling this on every freshness check stays cheap.
type FileIntervalProvider struct {
	path     string
	fallback time.Duration

	mu      sync.Mutex
	modTime time.Time
	cached  time.Duration
}

// NewFileIntervalProvider creates a provider watching path. The fallback is
// used when the file is missing or unreadable.
func NewFileIntervalProvider(path string, fallback time.Duration) *FileIntervalProvider {
	if fallback <= 0 {
		fallback = DefaultRefreshInterval
	}
	return &FileIntervalProvider{
		path:     path,
		fallback: fallback,
		cached:   fallback,
	}
}

// RefreshInterval returns the currently configured interval.
func (p *FileIntervalProvider) RefreshInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	fi, err := os.Stat(p.path)
	if err != nil {
		return p.cached
	}
	if fi.ModTime().Equal(p.modTime) {
		return p.cached
	}

	var doc struct {
		Refresh RefreshConfig `toml:"refresh"`
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p.cached
	}
	p.modTime = fi.ModTime()
	if err := toml.Unmarshal(data, &doc); err != nil {
		p.cached = p.fallback
		return p.cached
	}
	if doc.Refresh.IntervalMinutes <= 0 {
		p.cached = p.fallback
	} else {
		p.cached = doc.Refresh.Interval()
	}
	return p.cached
}
