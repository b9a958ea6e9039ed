package handler

import (
	"time"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// ListKernelsResponse is the response body for GET /kernels.
type ListKernelsResponse struct {
	Core     []domain.Kernel `json:"core"`
	Extended []domain.Kernel `json:"extended"`
}

// ListRunsResponse is the response body for GET /runs.
type ListRunsResponse struct {
	Items []domain.RunSummary `json:"items"`
	Total int                 `json:"total"`
}
