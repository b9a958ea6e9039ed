package domain

import "time"

// Speedup is the per-kernel ratio baseline.mean / current.mean.
// Values above 1 mean the current run is faster.
type Speedup struct {
	Label        string        `json:"label" yaml:"label"`
	BaselineMean time.Duration `json:"baseline_mean" yaml:"baseline_mean"`
	CurrentMean  time.Duration `json:"current_mean" yaml:"current_mean"`
	Ratio        float64       `json:"ratio" yaml:"ratio"`
}

// Comparison pairs the results of two runs.
type Comparison struct {
	BaselineID string    `json:"baseline_id" yaml:"baseline_id"`
	CurrentID  string    `json:"current_id" yaml:"current_id"`
	Speedups   []Speedup `json:"speedups" yaml:"speedups"`

	// Missing lists labels present in only one run.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`

	// Geomean is the geometric mean of all ratios.
	Geomean float64 `json:"geomean" yaml:"geomean"`
}
