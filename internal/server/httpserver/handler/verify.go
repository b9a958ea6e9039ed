package handler

import (
	"net/http"
	"strconv"
)

// handleVerify handles GET /verify. A failed check still returns 200 with
// passed=false; the X-Parity header carries the outcome for scripts.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	extended, _ := strconv.ParseBool(r.URL.Query().Get("extended"))

	out, err := h.verifier.Verify(r.Context(), extended)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("X-Parity", strconv.FormatBool(out.Passed))
	h.writeJSON(w, r, http.StatusOK, out)
}
