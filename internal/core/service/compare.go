package service

import (
	"math"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// Compare computes baseline.mean / current.mean for every label present in
// both runs. Failed results and zero means are reported as missing.
func Compare(baseline, current *domain.Run) *domain.Comparison {
	cmp := &domain.Comparison{
		BaselineID: baseline.ID,
		CurrentID:  current.ID,
	}

	base := make(map[string]*domain.Result, len(baseline.Results))
	for i := range baseline.Results {
		base[baseline.Results[i].Label] = &baseline.Results[i]
	}

	seen := make(map[string]bool, len(current.Results))
	var logSum float64
	for i := range current.Results {
		cur := &current.Results[i]
		seen[cur.Label] = true

		b, ok := base[cur.Label]
		if !ok || b.Failed() || cur.Failed() || b.Stats.Mean <= 0 || cur.Stats.Mean <= 0 {
			cmp.Missing = append(cmp.Missing, cur.Label)
			continue
		}

		ratio := float64(b.Stats.Mean) / float64(cur.Stats.Mean)
		cmp.Speedups = append(cmp.Speedups, domain.Speedup{
			Label:        cur.Label,
			BaselineMean: b.Stats.Mean,
			CurrentMean:  cur.Stats.Mean,
			Ratio:        ratio,
		})
		logSum += math.Log(ratio)
	}

	for i := range baseline.Results {
		if !seen[baseline.Results[i].Label] {
			cmp.Missing = append(cmp.Missing, baseline.Results[i].Label)
		}
	}

	if n := len(cmp.Speedups); n > 0 {
		cmp.Geomean = math.Exp(logSum / float64(n))
	}
	return cmp
}
