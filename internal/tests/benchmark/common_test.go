package benchmark

import (
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// sink keeps kernel results alive so calls are not optimised away.
var sink any

// reportMemory reports heap usage after a forced GC.
func reportMemory(b *testing.B) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/1024/1024, "heap-MB")
}

// reportOps reports the kernel's work rate in its own unit.
func reportOps(b *testing.B, k domain.Kernel) {
	if k.Ops <= 0 || b.Elapsed() <= 0 {
		return
	}
	perSec := float64(k.Ops) * float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(perSec, k.OpsUnit+"/s")
}

// sampleRun builds a stored run of n results.
func sampleRun(b *testing.B, n int) *domain.Run {
	b.Helper()
	id, err := domain.GenerateRunID()
	if err != nil {
		b.Fatal(err)
	}
	run := &domain.Run{
		ID:         id,
		Suite:      domain.SuiteCore,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Trials:     5,
	}
	for i := 0; i < n; i++ {
		run.Results = append(run.Results, domain.Result{
			Label:   "kernel",
			Kernel:  "kernel",
			Samples: []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
			Stats:   domain.Stats{Mean: 2 * time.Millisecond},
		})
	}
	return run
}
