package domain

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Suite selects which kernels a run executes.
type Suite string

const (
	// SuiteCore runs the 13 parity kernels once each.
	SuiteCore Suite = "core"

	// SuiteExtended runs the library variants.
	SuiteExtended Suite = "extended"

	// SuiteAll runs core followed by extended.
	SuiteAll Suite = "all"

	// SuiteBeast cycles the core suite BeastRounds times.
	SuiteBeast Suite = "beast"
)

// BeastRounds is the number of core passes in a beast run.
const BeastRounds = 50

// ParseSuite converts a name to a Suite.
func ParseSuite(s string) (Suite, error) {
	switch Suite(strings.ToLower(strings.TrimSpace(s))) {
	case "", SuiteCore:
		return SuiteCore, nil
	case SuiteExtended:
		return SuiteExtended, nil
	case SuiteAll:
		return SuiteAll, nil
	case SuiteBeast:
		return SuiteBeast, nil
	default:
		return "", ErrInvalidRun.WithDetails("unknown suite " + s)
	}
}

// Stats summarises the timed samples of one kernel.
type Stats struct {
	Min       time.Duration `json:"min" yaml:"min"`
	Max       time.Duration `json:"max" yaml:"max"`
	Mean      time.Duration `json:"mean" yaml:"mean"`
	Median    time.Duration `json:"median" yaml:"median"`
	P95       time.Duration `json:"p95" yaml:"p95"`
	StdDev    time.Duration `json:"stddev" yaml:"stddev"`
	OpsPerSec float64       `json:"ops_per_sec" yaml:"ops_per_sec"`
}

// Result holds the measurements of one kernel within a run.
type Result struct {
	// Label is the kernel name, suffixed " 2", " 3", ... on repeated beast rounds.
	Label    string   `json:"label" yaml:"label"`
	Kernel   string   `json:"kernel" yaml:"kernel"`
	Category Category `json:"category" yaml:"category"`
	Round    int      `json:"round" yaml:"round"`

	Samples []time.Duration `json:"samples" yaml:"samples"`
	Stats   Stats           `json:"stats" yaml:"stats"`

	// Value is the formatted return of the first timed call.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Consistent is false when trials returned different values.
	Consistent bool `json:"consistent" yaml:"consistent"`

	// Error and ErrorCode are set when a call aborted.
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Failed reports whether the kernel aborted.
func (r *Result) Failed() bool {
	return r.Error != ""
}

// Host describes the machine a run executed on.
type Host struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
	NumCPU    int    `json:"num_cpu" yaml:"num_cpu"`
}

// Run is one execution of a suite.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	Suite       Suite     `json:"suite" yaml:"suite"`
	Kernels     []string  `json:"kernels,omitempty" yaml:"kernels,omitempty"`
	Trials      int       `json:"trials" yaml:"trials"`
	Warmup      int       `json:"warmup" yaml:"warmup"`
	Parallelism int       `json:"parallelism" yaml:"parallelism"`
	Host        Host      `json:"host" yaml:"host"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time `json:"finished_at" yaml:"finished_at"`
	Results     []Result  `json:"results" yaml:"results"`

	// Cancelled is set when the run stopped before every kernel executed.
	Cancelled bool `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
}

// Duration returns the wall-clock length of the run.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failures counts aborted results.
func (r *Run) Failures() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Failed() {
			n++
		}
	}
	return n
}

// RunSummary describes a stored run without its samples.
type RunSummary struct {
	ID          string        `json:"id" yaml:"id"`
	Suite       Suite         `json:"suite" yaml:"suite"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
	Results     int           `json:"results" yaml:"results"`
	Failures    int           `json:"failures" yaml:"failures"`
	Cancelled   bool          `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	GoVersion   string        `json:"go_version" yaml:"go_version"`
	Platform    string        `json:"platform" yaml:"platform"`
	Trials      int           `json:"trials" yaml:"trials"`
	Parallelism int           `json:"parallelism" yaml:"parallelism"`
}

// Summary returns the run's summary.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:          r.ID,
		Suite:       r.Suite,
		StartedAt:   r.StartedAt,
		Elapsed:     r.Duration(),
		Results:     len(r.Results),
		Failures:    r.Failures(),
		Cancelled:   r.Cancelled,
		GoVersion:   r.Host.GoVersion,
		Platform:    r.Host.OS + "/" + r.Host.Arch,
		Trials:      r.Trials,
		Parallelism: r.Parallelism,
	}
}

// Result returns the first result with the given label.
func (r *Run) Result(label string) (*Result, bool) {
	for i := range r.Results {
		if r.Results[i].Label == label {
			return &r.Results[i], true
		}
	}
	return nil, false
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// GenerateRunID returns a new ULID run identifier. IDs generated by one
// process sort in creation order.
func GenerateRunID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return id.String(), nil
}

// ValidateRunID checks that id is a well-formed ULID.
func ValidateRunID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return ErrRunNotFound.WithDetails("malformed run id " + id)
	}
	return nil
}

// RunTime extracts the creation time encoded in a run ID.
func RunTime(id string) (time.Time, error) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, ErrRunNotFound.WithDetails("malformed run id " + id)
	}
	return ulid.Time(u.Time()), nil
}
