// Package store persists per-domain snapshots as flat JSON files.
//
// The cache layout is deliberately simple: one file per domain under a
// single directory, freshness derived from the file's modification time
// against the live refresh interval. External tooling can inspect or prime
// the cache with nothing but a text editor.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
)

// emptyValue is served when a domain has never been fetched or its file is
// unreadable. Every domain serializes as a JSON array.
var emptyValue = json.RawMessage("[]")

// FileStore is the file-backed cache for the four domains.
type FileStore struct {
	dir      string
	provider config.IntervalProvider
	logger   *common.Logger
	now      func() time.Time
}

// New creates a FileStore rooted at dir. The directory is created if absent.
func New(dir string, provider config.IntervalProvider, logger *common.Logger) *FileStore {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn().Str("dir", dir).Err(err).Msg("could not create cache directory")
	}
	return &FileStore{
		dir:      dir,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Tests use this to probe the freshness
// boundary deterministically.
func (s *FileStore) SetClock(now func() time.Time) {
	s.now = now
}

// Path returns the cache file path for a domain.
func (s *FileStore) Path(d models.Domain) string {
	return filepath.Join(s.dir, string(d)+".json")
}

// IsFresh reports whether the domain's cache file exists and is younger than
// the current refresh interval. The interval is re-read from the provider on
// every call so operator changes apply without restart.
func (s *FileStore) IsFresh(d models.Domain) bool {
	fi, err := os.Stat(s.Path(d))
	if err != nil {
		return false
	}
	return s.now().Sub(fi.ModTime()) < s.provider.RefreshInterval()
}

// Load returns the domain's cached value, or an empty array when the file is
// missing, unreadable, or not valid JSON. Load never fails.
func (s *FileStore) Load(d models.Domain) json.RawMessage {
	data, err := os.ReadFile(s.Path(d))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug().Str("domain", string(d)).Err(err).Msg("cache read failed")
		}
		return emptyValue
	}
	if !json.Valid(data) {
		s.logger.Warn().Str("domain", string(d)).Msg("cache file is not valid JSON, serving empty")
		return emptyValue
	}
	return data
}

// Save serializes v and replaces the domain's cache file. The write goes
// through a temp file and rename so concurrent readers never see a torn
// file. On failure the previous file (if any) stays authoritative.
func (s *FileStore) Save(d models.Domain, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", d, err)
	}

	tmp, err := os.CreateTemp(s.dir, string(d)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", d, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s snapshot: %w", d, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s snapshot: %w", d, err)
	}
	if err := os.Rename(tmpName, s.Path(d)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s snapshot: %w", d, err)
	}
	return nil
}
