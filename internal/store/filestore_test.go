package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
)

func newTestStore(t *testing.T, interval time.Duration) *FileStore {
	t.Helper()
	return New(t.TempDir(), config.StaticInterval(interval), common.NewSilentLogger())
}

func TestLoad_MissingFileReturnsEmptyArray(t *testing.T) {
	s := newTestStore(t, time.Minute)

	data := s.Load(models.DomainNews)
	if string(data) != "[]" {
		t.Errorf("expected empty array, got %s", data)
	}
}

func TestLoad_MalformedFileReturnsEmptyArray(t *testing.T) {
	s := newTestStore(t, time.Minute)

	if err := os.WriteFile(s.Path(models.DomainNews), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed cache file: %v", err)
	}

	data := s.Load(models.DomainNews)
	if string(data) != "[]" {
		t.Errorf("expected empty array for malformed file, got %s", data)
	}
}

func TestSaveThenLoad_Roundtrip(t *testing.T) {
	s := newTestStore(t, time.Minute)

	items := []models.NewsItem{{Title: "headline", Link: "https://example.com", Source: "feed"}}
	if err := s.Save(models.DomainNews, items); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var got []models.NewsItem
	if err := json.Unmarshal(s.Load(models.DomainNews), &got); err != nil {
		t.Fatalf("failed to unmarshal loaded value: %v", err)
	}
	if len(got) != 1 || got[0].Title != "headline" {
		t.Errorf("unexpected roundtrip value: %+v", got)
	}
}

func TestIsFresh_MissingFileIsStale(t *testing.T) {
	s := newTestStore(t, time.Minute)

	if s.IsFresh(models.DomainMarkets) {
		t.Error("missing file should be stale")
	}
}

func TestIsFresh_Boundary(t *testing.T) {
	s := newTestStore(t, time.Minute)

	if err := s.Save(models.DomainMarkets, []models.MarketAsset{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	written := time.Now()
	if err := os.Chtimes(s.Path(models.DomainMarkets), written, written); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	s.SetClock(func() time.Time { return written.Add(59 * time.Second) })
	if !s.IsFresh(models.DomainMarkets) {
		t.Error("file younger than interval should be fresh")
	}

	s.SetClock(func() time.Time { return written.Add(time.Minute) })
	if s.IsFresh(models.DomainMarkets) {
		t.Error("file exactly interval old should be stale")
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, config.StaticInterval(time.Minute), common.NewSilentLogger())

	if err := s.Save(models.DomainIncidents, []models.IncidentGroup{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSave_FailsOnMissingDirectory(t *testing.T) {
	s := &FileStore{
		dir:      filepath.Join(t.TempDir(), "does", "not", "exist"),
		provider: config.StaticInterval(time.Minute),
		logger:   common.NewSilentLogger(),
		now:      time.Now,
	}

	if err := s.Save(models.DomainNews, []models.NewsItem{}); err == nil {
		t.Error("expected error when cache directory is missing")
	}
}
