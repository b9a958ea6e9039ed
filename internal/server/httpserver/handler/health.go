package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "idle"
	if len(h.running) > 0 {
		status = "running"
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "healthy",
		"runner":  status,
		"version": buildinfo.Get().Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
