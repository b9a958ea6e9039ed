// Package service implements the benchmark harness around pkg/kernel.
//
//   - Catalogue: ordered kernel table with name lookup
//   - Runner: executes a suite with warmup, trials, pacing and optional
//     parallelism, and records panics as failed results
//   - Verifier: checks kernel artefacts against reference values
//   - History: stored-run queries
//   - Compare: per-kernel speedup between two runs
//
// Storage and metrics are reached through the RunStore and Recorder
// interfaces so the service has no IO dependency of its own.
package service
