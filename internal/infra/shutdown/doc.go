// Package shutdown coordinates process termination.
//
// WithSignals derives a context cancelled on SIGINT or SIGTERM; the run
// command uses it so that an interrupt stops a run between kernels and
// the partial run is still reported. Handler runs named cleanup hooks in
// reverse registration order under a deadline, which serve mode uses to
// drain the HTTP server and close the run store.
package shutdown
