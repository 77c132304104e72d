package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
	"github.com/joblinours/cyberdash/internal/refresh"
	"github.com/joblinours/cyberdash/internal/store"
)

// stubAdapter serves a fixed value for one domain.
type stubAdapter struct {
	domain models.Domain
	value  any
}

func (s stubAdapter) Domain() models.Domain                  { return s.domain }
func (s stubAdapter) Fetch(ctx context.Context) (any, error) { return s.value, nil }

func newTestCoordinator(t *testing.T) *refresh.Coordinator {
	t.Helper()
	provider := config.StaticInterval(time.Minute)
	st := store.New(t.TempDir(), provider, common.NewSilentLogger())
	return refresh.New(st, provider, common.NewSilentLogger(),
		stubAdapter{domain: models.DomainNews, value: []models.NewsItem{{Title: "headline", Source: "feed"}}},
		stubAdapter{domain: models.DomainVulnerabilities, value: []models.VulnerabilityRecord{}},
		stubAdapter{domain: models.DomainIncidents, value: []models.IncidentGroup{}},
		stubAdapter{domain: models.DomainMarkets, value: []models.MarketAsset{}},
	)
}

func TestHealthHandler_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(common.NewSilentLogger())

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := NewHealthHandler(common.NewSilentLogger())

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestSnapshotHandler_ServesDomainJSON(t *testing.T) {
	handler := NewSnapshotHandler(common.NewSilentLogger(), newTestCoordinator(t))

	req := httptest.NewRequest("GET", "/news", nil)
	w := httptest.NewRecorder()

	handler.Serve(models.DomainNews)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var items []models.NewsItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(items) != 1 || items[0].Title != "headline" {
		t.Errorf("unexpected payload: %+v", items)
	}
}

func TestSnapshotHandler_EmptyDomainServesArray(t *testing.T) {
	handler := NewSnapshotHandler(common.NewSilentLogger(), newTestCoordinator(t))

	req := httptest.NewRequest("GET", "/markets", nil)
	w := httptest.NewRecorder()

	handler.Serve(models.DomainMarkets)(w, req)

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestSnapshotHandler_RejectsNonGET(t *testing.T) {
	handler := NewSnapshotHandler(common.NewSilentLogger(), newTestCoordinator(t))

	req := httptest.NewRequest("DELETE", "/news", nil)
	w := httptest.NewRecorder()

	handler.Serve(models.DomainNews)(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestDashboardHandler_RendersSnapshots(t *testing.T) {
	shortcuts := []models.Shortcut{{Name: "NVD", URL: "https://nvd.nist.gov/"}}
	handler := NewDashboardHandler(common.NewSilentLogger(), newTestCoordinator(t), shortcuts, config.UIConfig{
		Accent:     "#e63a30",
		Background: "#181a1b",
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "headline") {
		t.Error("expected inlined news snapshot in page")
	}
	if !strings.Contains(body, "NVD") {
		t.Error("expected shortcuts in page")
	}
	if !strings.Contains(body, "#e63a30") {
		t.Error("expected accent color in page")
	}
}
