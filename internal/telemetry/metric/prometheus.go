package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

const namespace = "kernbench"

// DurationBuckets span 100µs to roughly 30s, the range from a single
// ray-trace pass to a beast-mode bubble sort on a slow host.
var DurationBuckets = prometheus.ExponentialBuckets(0.0001, 2.5, 15)

var _ service.Recorder = (*Registry)(nil)

// Registry holds the application metrics.
type Registry struct {
	registry *prometheus.Registry

	KernelDuration *prometheus.HistogramVec
	KernelRuns     *prometheus.CounterVec
	KernelFailures *prometheus.CounterVec
	Runs           *prometheus.CounterVec
	LastRun        prometheus.Gauge
}

// NewRegistry creates a registry with the Go and process collectors and
// the kernel metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		KernelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kernel",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of one timed kernel call",
			Buckets:   DurationBuckets,
		}, []string{"kernel"}),
		KernelRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kernel",
			Name:      "runs_total",
			Help:      "Timed kernel calls",
		}, []string{"kernel"}),
		KernelFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kernel",
			Name:      "failures_total",
			Help:      "Kernel calls that aborted",
		}, []string{"kernel"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed benchmark runs",
		}, []string{"suite", "status"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the most recent run finished",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		NewCollector(),
		r.KernelDuration,
		r.KernelRuns,
		r.KernelFailures,
		r.Runs,
		r.LastRun,
	)
	return r
}

// Registerer exposes the underlying registry for other components.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveCall records one timed kernel call.
func (r *Registry) ObserveCall(kernel string, d time.Duration) {
	r.KernelDuration.WithLabelValues(kernel).Observe(d.Seconds())
	r.KernelRuns.WithLabelValues(kernel).Inc()
}

// ObserveFailure records an aborted kernel call.
func (r *Registry) ObserveFailure(kernel string) {
	r.KernelFailures.WithLabelValues(kernel).Inc()
}

// ObserveRun records a finished run.
func (r *Registry) ObserveRun(run *domain.Run) {
	status := "ok"
	switch {
	case run.Cancelled:
		status = "cancelled"
	case run.Failures() > 0:
		status = "failed"
	}
	r.Runs.WithLabelValues(string(run.Suite), status).Inc()
	r.LastRun.Set(float64(run.FinishedAt.UnixNano()) / 1e9)
}

// Handler returns an HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}
