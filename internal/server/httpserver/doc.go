// Package httpserver serves the benchmark API.
//
// Endpoints:
//
//	GET    /health          liveness
//	GET    /kernels         catalogue
//	GET    /runs            stored runs, newest first (?limit=N)
//	GET    /runs/latest     most recent run
//	GET    /runs/{id}       one run
//	DELETE /runs/{id}       remove a run
//	POST   /runs            execute a run; body is a RunRequest
//	GET    /compare         speedups (?baseline=ID&current=ID)
//	GET    /verify          parity checks (?extended=true)
//	GET    /metrics         Prometheus exposition
//
// Only one run executes at a time; a second POST /runs while one is in
// progress is rejected with 409 rather than queued, since concurrent runs
// would distort each other's timings.
package httpserver
