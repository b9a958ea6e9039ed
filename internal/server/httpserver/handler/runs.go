package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

const (
	defaultListLimit = 20
	maxRequestBody   = 64 << 10
)

// handleListRuns handles GET /runs.
func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("limit must be an integer"))
			return
		}
		limit = n
	}

	runs, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := ListRunsResponse{Items: make([]domain.RunSummary, 0, len(runs)), Total: len(runs)}
	for _, run := range runs {
		resp.Items = append(resp.Items, run.Summary())
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

// handleGetRun handles GET /runs/{id}; "latest" selects the newest run.
func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.history.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, run)
}

// handleDeleteRun handles DELETE /runs/{id}.
func (h *Handler) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.history.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"deleted": id})
}

// handleCreateRun handles POST /runs. The run is bound to the request
// context, so a client that disconnects cancels it.
func (h *Handler) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req service.RunRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("invalid JSON body").WithCause(err))
		return
	}

	select {
	case h.running <- struct{}{}:
		defer func() { <-h.running }()
	default:
		h.handleServiceError(w, r, domain.ErrRunBusy)
		return
	}

	logger.L(r.Context()).Info("run requested", "suite", req.Suite, "kernels", len(req.Kernels))

	run, err := h.runner.Run(r.Context(), req)
	if err != nil {
		if run != nil && errors.Is(err, domain.ErrRunCancelled) {
			h.writeJSON(w, r, http.StatusAccepted, run)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, run)
}

// handleCompare handles GET /compare?baseline=ID&current=ID. Either ID may
// be "latest"; current defaults to the latest run.
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	baseline := q.Get("baseline")
	if baseline == "" {
		h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("baseline is required"))
		return
	}
	current := q.Get("current")
	if current == "" {
		current = service.LatestAlias
	}

	cmp, err := h.history.Compare(r.Context(), baseline, current)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, cmp)
}
