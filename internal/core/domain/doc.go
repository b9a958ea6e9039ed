// Package domain defines the benchmark harness models.
//
// Types here carry no IO and no framework coupling:
//
//   - Kernel: catalogue entry describing one benchmark kernel
//   - Run, Result, Stats: one execution of a suite and its measurements
//   - Comparison: per-kernel speedup between two runs
//   - Verification, Check: parity checks against reference values
//   - Errors: coded domain errors
package domain
