package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
	"github.com/yndnr/kernbench-go/pkg/cmap"
)

// Limits on a single run request.
const (
	MaxTrials      = 1000
	MaxWarmup      = 100
	MaxParallelism = 64
	MaxPause       = 10 * time.Second
)

// RunStore persists completed runs.
type RunStore interface {
	Save(ctx context.Context, run *domain.Run) error
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns at most limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*domain.Run, error)

	Latest(ctx context.Context) (*domain.Run, error)
	Delete(ctx context.Context, id string) error
}

// Recorder receives measurements as they happen.
type Recorder interface {
	ObserveCall(kernel string, d time.Duration)
	ObserveFailure(kernel string)
	ObserveRun(run *domain.Run)
}

// RunRequest selects what a run executes. Zero fields take the runner
// defaults. Warmup is a pointer so that zero warmup calls can be requested.
type RunRequest struct {
	Suite       string   `json:"suite,omitempty"`
	Kernels     []string `json:"kernels,omitempty"`
	Trials      int      `json:"trials,omitempty"`
	Warmup      *int     `json:"warmup,omitempty"`
	Parallelism int      `json:"parallelism,omitempty"`

	// PauseMillis spaces kernel starts apart. The browser harness paused
	// 10ms between kernels to keep the page responsive.
	PauseMillis int `json:"pause_ms,omitempty"`

	NoHistory bool `json:"no_history,omitempty"`
}

// RunDefaults fill unset RunRequest fields.
type RunDefaults struct {
	Suite       domain.Suite
	Trials      int
	Warmup      int
	Parallelism int
	Pause       time.Duration
}

// DefaultRunDefaults returns one warmup and five trials, sequential, no pause.
func DefaultRunDefaults() RunDefaults {
	return RunDefaults{
		Suite:       domain.SuiteCore,
		Trials:      5,
		Warmup:      1,
		Parallelism: 1,
	}
}

// Progress is reported after each kernel finishes.
type Progress struct {
	Done   int
	Total  int
	Result *domain.Result
}

// Runner executes benchmark runs.
type Runner struct {
	catalogue *Catalogue
	store     RunStore
	recorder  Recorder
	logger    logger.Logger
	defaults  atomic.Pointer[RunDefaults]
	progress  func(Progress)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore saves every run to s.
func WithStore(s RunStore) RunnerOption {
	return func(r *Runner) { r.store = s }
}

// WithRecorder reports measurements to rec.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithLogger sets the runner logger.
func WithLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithDefaults sets the request defaults.
func WithDefaults(d RunDefaults) RunnerOption {
	return func(r *Runner) { r.defaults.Store(&d) }
}

// WithProgress calls fn after each kernel. fn may be called concurrently
// when parallelism is above one.
func WithProgress(fn func(Progress)) RunnerOption {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a Runner over catalogue.
func NewRunner(catalogue *Catalogue, opts ...RunnerOption) *Runner {
	r := &Runner{
		catalogue: catalogue,
		logger:    logger.Default(),
	}
	d := DefaultRunDefaults()
	r.defaults.Store(&d)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetDefaults replaces the request defaults. Runs already planned keep theirs.
func (r *Runner) SetDefaults(d RunDefaults) {
	r.defaults.Store(&d)
}

// Defaults returns the current request defaults.
func (r *Runner) Defaults() RunDefaults {
	return *r.defaults.Load()
}

// job is one kernel execution within a run.
type job struct {
	kernel domain.Kernel
	label  string
	round  int
}

type plan struct {
	suite       domain.Suite
	names       []string
	jobs        []job
	trials      int
	warmup      int
	parallelism int
	pause       time.Duration
}

func (r *Runner) plan(req RunRequest) (*plan, error) {
	d := r.Defaults()
	p := &plan{
		suite:       d.Suite,
		trials:      orDefault(req.Trials, d.Trials),
		warmup:      d.Warmup,
		parallelism: orDefault(req.Parallelism, d.Parallelism),
		pause:       d.Pause,
	}
	if req.Warmup != nil {
		p.warmup = *req.Warmup
	}
	if req.PauseMillis != 0 {
		p.pause = time.Duration(req.PauseMillis) * time.Millisecond
	}
	if req.Suite != "" {
		s, err := domain.ParseSuite(req.Suite)
		if err != nil {
			return nil, err
		}
		p.suite = s
	}

	switch {
	case p.trials < 1 || p.trials > MaxTrials:
		return nil, domain.ErrInvalidRun.WithDetails(fmt.Sprintf("trials must be in 1..%d", MaxTrials))
	case p.warmup < 0 || p.warmup > MaxWarmup:
		return nil, domain.ErrInvalidRun.WithDetails(fmt.Sprintf("warmup must be in 0..%d", MaxWarmup))
	case p.parallelism < 1 || p.parallelism > MaxParallelism:
		return nil, domain.ErrInvalidRun.WithDetails(fmt.Sprintf("parallelism must be in 1..%d", MaxParallelism))
	case p.pause < 0 || p.pause > MaxPause:
		return nil, domain.ErrInvalidRun.WithDetails("pause must be in 0.." + MaxPause.String())
	}

	kernels := r.catalogue.Suite(p.suite)
	if len(req.Kernels) > 0 {
		kernels = kernels[:0:0]
		seen := make(map[string]bool, len(req.Kernels))
		for _, name := range req.Kernels {
			if seen[name] {
				return nil, domain.ErrInvalidRun.WithDetails("duplicate kernel " + name)
			}
			seen[name] = true
			k, err := r.catalogue.Lookup(name)
			if err != nil {
				return nil, err
			}
			kernels = append(kernels, k)
			p.names = append(p.names, name)
		}
	}

	rounds := 1
	if p.suite == domain.SuiteBeast {
		rounds = domain.BeastRounds
	}
	for round := 1; round <= rounds; round++ {
		for _, k := range kernels {
			p.jobs = append(p.jobs, job{kernel: k, label: Label(k.Name, round), round: round})
		}
	}
	return p, nil
}

func orDefault(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}

// Label names the round-th execution of a kernel: "fibonacci", "fibonacci 2", ...
func Label(name string, round int) string {
	if round <= 1 {
		return name
	}
	return name + " " + strconv.Itoa(round)
}

// Run executes req and returns the run. On cancellation the partial run is
// returned together with ErrRunCancelled. The run is saved unless
// req.NoHistory is set or no store is configured.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*domain.Run, error) {
	p, err := r.plan(req)
	if err != nil {
		return nil, err
	}

	id, err := domain.GenerateRunID()
	if err != nil {
		return nil, err
	}
	ctx = logger.WithRunID(ctx, id)
	log := r.logger.WithContext(ctx).With("run_id", id)

	info := buildinfo.Get()
	run := &domain.Run{
		ID:          id,
		Suite:       p.suite,
		Kernels:     p.names,
		Trials:      p.trials,
		Warmup:      p.warmup,
		Parallelism: p.parallelism,
		Host: domain.Host{
			Version:   info.Version,
			GoVersion: info.GoVersion,
			OS:        info.OS,
			Arch:      info.Arch,
			NumCPU:    info.NumCPU,
		},
		StartedAt: time.Now().UTC(),
	}

	log.Info("run started",
		"suite", p.suite,
		"jobs", len(p.jobs),
		"trials", p.trials,
		"warmup", p.warmup,
		"parallelism", p.parallelism)

	results := cmap.New[*domain.Result]()
	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.pause > 0 {
		limiter = rate.NewLimiter(rate.Every(p.pause), 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)
	var done atomic.Int64

	for _, j := range p.jobs {
		if err := limiter.Wait(gctx); err != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := r.execute(gctx, j, p)
			results.Set(j.label, res)

			n := int(done.Add(1))
			if res.Failed() {
				log.Warn("kernel aborted", "kernel", j.label, "error", res.Error)
			} else {
				log.Debug("kernel finished", "kernel", j.label, "mean", res.Stats.Mean)
			}
			if r.progress != nil {
				r.progress(Progress{Done: n, Total: len(p.jobs), Result: res})
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, j := range p.jobs {
		if res, ok := results.Get(j.label); ok {
			run.Results = append(run.Results, *res)
		}
	}
	run.FinishedAt = time.Now().UTC()
	run.Cancelled = ctx.Err() != nil || len(run.Results) < len(p.jobs)

	if r.recorder != nil {
		r.recorder.ObserveRun(run)
	}

	log.Info("run finished",
		"results", len(run.Results),
		"failures", run.Failures(),
		"cancelled", run.Cancelled,
		"elapsed", run.Duration())

	if r.store != nil && !req.NoHistory {
		if err := r.store.Save(context.WithoutCancel(ctx), run); err != nil {
			return run, domain.ErrStorage.WithCause(err)
		}
	}

	if run.Cancelled {
		cause := ctx.Err()
		if cause == nil {
			cause = context.Canceled
		}
		return run, domain.ErrRunCancelled.WithCause(cause)
	}
	return run, nil
}

// execute runs the warmup and timed trials of one job.
func (r *Runner) execute(ctx context.Context, j job, p *plan) *domain.Result {
	res := &domain.Result{
		Label:      j.label,
		Kernel:     j.kernel.Name,
		Category:   j.kernel.Category,
		Round:      j.round,
		Consistent: true,
	}

	fail := func(err error) *domain.Result {
		res.Error = err.Error()
		res.ErrorCode = domain.GetErrorCode(err)
		if r.recorder != nil {
			r.recorder.ObserveFailure(j.kernel.Name)
		}
		return res
	}

	for i := 0; i < p.warmup; i++ {
		if _, _, err := invoke(j.kernel); err != nil {
			return fail(err)
		}
	}

	samples := make([]time.Duration, 0, p.trials)
	for i := 0; i < p.trials && ctx.Err() == nil; i++ {
		v, d, err := invoke(j.kernel)
		if err != nil {
			res.Samples = samples
			res.Stats = ComputeStats(samples, j.kernel.Ops)
			return fail(err)
		}
		samples = append(samples, d)
		if r.recorder != nil {
			r.recorder.ObserveCall(j.kernel.Name, d)
		}

		s := domain.FormatValue(v)
		if i == 0 {
			res.Value = s
		} else if s != res.Value {
			res.Consistent = false
		}
	}

	res.Samples = samples
	res.Stats = ComputeStats(samples, j.kernel.Ops)
	return res
}

// invoke times one call. A panic becomes ErrKernelAborted and the call's
// duration is discarded. Kernels without a result are timed through Run
// so the measured region holds only the kernel itself.
func invoke(k domain.Kernel) (v any, d time.Duration, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = domain.ErrKernelAborted.WithDetails(fmt.Sprintf("%s: %v", k.Name, p))
		}
	}()

	if run := k.Run; run != nil {
		start := time.Now()
		run()
		return nil, time.Since(start), nil
	}

	call := k.Call
	start := time.Now()
	v = call()
	d = time.Since(start)
	return v, d, nil
}
