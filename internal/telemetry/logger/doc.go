// Package logger provides structured logging for kernbench.
//
// It wraps log/slog behind a small Logger interface:
//
//   - JSON (default) or text output
//   - a process-wide level that can be changed at runtime
//   - request_id and run_id propagation through context.Context
//   - time.Duration attributes rendered as strings ("1.25ms") in both formats
//
// Kernels never log; only the harness, CLI and server do.
package logger
