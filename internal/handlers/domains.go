package handlers

import (
	"net/http"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/models"
	"github.com/joblinours/cyberdash/internal/refresh"
)

// SnapshotHandler serves one domain's cached snapshot as JSON, refreshing
// it first when stale.
type SnapshotHandler struct {
	logger      *common.Logger
	coordinator *refresh.Coordinator
}

// NewSnapshotHandler creates a snapshot handler over the coordinator.
func NewSnapshotHandler(logger *common.Logger, coordinator *refresh.Coordinator) *SnapshotHandler {
	return &SnapshotHandler{logger: logger, coordinator: coordinator}
}

// Serve returns an http.HandlerFunc for one domain endpoint.
func (h *SnapshotHandler) Serve(d models.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !RequireMethod(w, r, "GET") {
			return
		}
		WriteRawJSON(w, http.StatusOK, h.coordinator.GetWithCache(r.Context(), d))
	}
}
