package handler

import "net/http"

// handleListKernels handles GET /kernels.
func (h *Handler) handleListKernels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, ListKernelsResponse{
		Core:     h.catalogue.Core(),
		Extended: h.catalogue.Extended(),
	})
}
