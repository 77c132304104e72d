package server

import (
	"net/http"

	"github.com/joblinours/cyberdash/internal/handlers"
	"github.com/joblinours/cyberdash/internal/metrics"
	"github.com/joblinours/cyberdash/internal/models"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Dashboard page (HTML)
	mux.HandleFunc("/{$}", s.app.DashboardHandler.ServeHTTP)

	// Domain snapshot endpoints (JSON)
	mux.HandleFunc("/news", s.app.SnapshotHandler.Serve(models.DomainNews))
	mux.HandleFunc("/vulnerabilities", s.app.SnapshotHandler.Serve(models.DomainVulnerabilities))
	mux.HandleFunc("/incidents", s.app.SnapshotHandler.Serve(models.DomainIncidents))
	mux.HandleFunc("/markets", s.app.SnapshotHandler.Serve(models.DomainMarkets))

	// Operational endpoints
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.Handle("/metrics", metrics.Handler())

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "the requested endpoint does not exist")
}
