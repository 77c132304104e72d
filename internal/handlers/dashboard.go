package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
	"github.com/joblinours/cyberdash/internal/refresh"
)

//go:embed pages/dashboard.html
var pagesFS embed.FS

// DashboardHandler renders the single-page dashboard with all four domain
// snapshots inlined, so the page paints without a round of API calls.
type DashboardHandler struct {
	logger      *common.Logger
	coordinator *refresh.Coordinator
	templates   *template.Template
	shortcuts   []models.Shortcut
	ui          config.UIConfig
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, coordinator *refresh.Coordinator, shortcuts []models.Shortcut, ui config.UIConfig) *DashboardHandler {
	templates := template.Must(template.ParseFS(pagesFS, "pages/*.html"))
	return &DashboardHandler{
		logger:      logger,
		coordinator: coordinator,
		templates:   templates,
		shortcuts:   shortcuts,
		ui:          ui,
	}
}

// ServeHTTP renders the dashboard page.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	data := map[string]interface{}{
		"News":      h.snapshotJS(r.Context(), models.DomainNews),
		"Vulns":     h.snapshotJS(r.Context(), models.DomainVulnerabilities),
		"Incidents": h.snapshotJS(r.Context(), models.DomainIncidents),
		"Markets":   h.snapshotJS(r.Context(), models.DomainMarkets),
		"Shortcuts": h.shortcutsJS(),
		"Accent":    h.ui.Accent,
		"Background": h.ui.Background,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.logger.Error().Err(err).Msg("dashboard render failed")
	}
}

func (h *DashboardHandler) snapshotJS(ctx context.Context, d models.Domain) template.JS {
	return template.JS(h.coordinator.GetWithCache(ctx, d))
}

func (h *DashboardHandler) shortcutsJS() template.JS {
	shortcuts := h.shortcuts
	if shortcuts == nil {
		shortcuts = []models.Shortcut{}
	}
	data, err := json.Marshal(shortcuts)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(data)
}
