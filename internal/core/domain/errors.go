package domain

import (
	"errors"
	"fmt"
)

// DomainError is an error with a stable code of the form KB-<AREA>-<NNNN>.
// The last four digits mirror the HTTP status the error maps to, with a
// trailing sequence digit.
type DomainError struct {
	Code    string // Error code (e.g., "KB-RUN-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Kernel errors.
var (
	// ErrKernelNotFound indicates a kernel name is not in the catalogue.
	ErrKernelNotFound = NewDomainError("KB-KERN-4040", "kernel not found")

	// ErrKernelAborted indicates a kernel panicked during a call.
	ErrKernelAborted = NewDomainError("KB-KERN-5000", "kernel aborted")
)

// Run errors.
var (
	// ErrInvalidRun indicates a run request failed validation.
	ErrInvalidRun = NewDomainError("KB-RUN-4000", "invalid run request")

	// ErrRunNotFound indicates no stored run has the requested ID.
	ErrRunNotFound = NewDomainError("KB-RUN-4040", "run not found")

	// ErrRunBusy indicates another run is executing in serve mode.
	ErrRunBusy = NewDomainError("KB-RUN-4090", "run in progress")

	// ErrRunCancelled indicates the run context was cancelled before completion.
	ErrRunCancelled = NewDomainError("KB-RUN-4990", "run cancelled")
)

// ErrParityMismatch indicates a kernel artefact differs from its reference value.
var ErrParityMismatch = NewDomainError("KB-PAR-5000", "parity mismatch")

// System errors.
var (
	ErrInternal    = NewDomainError("KB-SYS-5000", "internal error")
	ErrStorage     = NewDomainError("KB-SYS-5001", "storage error")
	ErrBadRequest  = NewDomainError("KB-SYS-4000", "bad request")
	ErrRateLimited = NewDomainError("KB-SYS-4290", "too many requests")
)
