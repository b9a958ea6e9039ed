// Package main provides the entry point for kernbench.
//
// kernbench runs the deterministic compute kernels, keeps a history of
// runs and compares them:
//
//   - run, list and verify kernels
//   - inspect, compare and delete saved runs
//   - serve the same operations over HTTP
//   - work interactively in a shell
//
// Usage:
//
//	kernbench run --suite core
//	kernbench -o json history list
//	kernbench compare <baseline-id> latest
//	kernbench serve --addr :5090
package main
