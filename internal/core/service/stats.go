package service

import (
	"math"
	"slices"
	"time"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// ComputeStats summarises samples. ops is the analytic work per call; when
// positive, OpsPerSec is ops divided by the mean.
func ComputeStats(samples []time.Duration, ops int64) domain.Stats {
	if len(samples) == 0 {
		return domain.Stats{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum float64
	for _, s := range sorted {
		sum += float64(s)
	}
	mean := sum / float64(len(sorted))

	var sq float64
	for _, s := range sorted {
		d := float64(s) - mean
		sq += d * d
	}

	st := domain.Stats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   time.Duration(mean),
		Median: median(sorted),
		P95:    percentile(sorted, 95),
		StdDev: time.Duration(math.Sqrt(sq / float64(len(sorted)))),
	}
	if ops > 0 && mean > 0 {
		st.OpsPerSec = float64(ops) / (mean / float64(time.Second))
	}
	return st
}

func median(sorted []time.Duration) time.Duration {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := int(math.Ceil(float64(p) / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
