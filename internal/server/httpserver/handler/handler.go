package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// Deps are the services behind the handlers.
type Deps struct {
	Catalogue *service.Catalogue
	Runner    *service.Runner
	History   *service.History
	Verifier  *service.Verifier
	Logger    logger.Logger
}

// Handler routes API requests to the core services.
type Handler struct {
	catalogue *service.Catalogue
	runner    *service.Runner
	history   *service.History
	verifier  *service.Verifier
	logger    logger.Logger
	mux       *http.ServeMux

	// running admits one run at a time.
	running chan struct{}
}

// New creates a Handler.
func New(d Deps) *Handler {
	l := d.Logger
	if l == nil {
		l = logger.Default()
	}
	h := &Handler{
		catalogue: d.Catalogue,
		runner:    d.Runner,
		history:   d.History,
		verifier:  d.Verifier,
		logger:    l,
		mux:       http.NewServeMux(),
		running:   make(chan struct{}, 1),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /kernels", h.handleListKernels)
	h.mux.HandleFunc("GET /runs", h.handleListRuns)
	h.mux.HandleFunc("GET /runs/{id}", h.handleGetRun)
	h.mux.HandleFunc("DELETE /runs/{id}", h.handleDeleteRun)
	h.mux.HandleFunc("POST /runs", h.handleCreateRun)
	h.mux.HandleFunc("GET /compare", h.handleCompare)
	h.mux.HandleFunc("GET /verify", h.handleVerify)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := logger.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewErrorResponse(requestID, code, message, details))
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		status := ErrorCodeToHTTPStatus(de.Code)
		if status >= http.StatusInternalServerError {
			logger.L(r.Context()).Error("request failed", "error", err)
		}
		var details any
		if de.Details != "" {
			details = de.Details
		}
		h.writeError(w, r, status, de.Code, de.Message, details)
		return
	}

	logger.L(r.Context()).Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, "internal server error", nil)
}

// ErrorCodeToHTTPStatus maps a KB-<AREA>-<NNNN> code to an HTTP status.
func ErrorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4990"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
