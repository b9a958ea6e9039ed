// Package metric exposes benchmark measurements in Prometheus format.
//
// Registry implements the runner's Recorder: each timed kernel call feeds
// a duration histogram, aborted calls bump a failure counter and each
// finished run updates the run counter and last-run timestamp. A custom
// collector reports build and host information. Handler serves the
// registry at /metrics.
package metric
