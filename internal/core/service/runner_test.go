package service_test

import (
	"context"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

func intPtr(v int) *int { return &v }

var _ = Describe("Runner", func() {
	var (
		store    *memStore
		recorder *countingRecorder
		drift    atomic.Int64
		noops    atomic.Int64
		runner   *service.Runner
	)

	fakeCore := func() []domain.Kernel {
		return []domain.Kernel{
			{Name: "answer", Category: domain.CategoryNumeric, Returns: domain.ReturnInt, Ops: 42, Call: func() any { return int32(42) }},
			{Name: "noop", Category: domain.CategorySystem, Returns: domain.ReturnNone, Ops: 1, Run: func() { noops.Add(1) }},
			{Name: "boom", Category: domain.CategoryData, Returns: domain.ReturnNone, Ops: 1, Run: func() { panic("index out of range") }},
		}
	}

	BeforeEach(func() {
		store = newMemStore()
		recorder = newCountingRecorder()
		drift.Store(0)
		noops.Store(0)
		extended := []domain.Kernel{
			{Name: "drift", Category: domain.CategoryNumeric, Ops: 1, Call: func() any { return drift.Add(1) }},
		}
		runner = service.NewRunner(
			service.NewCatalogueFrom(fakeCore(), extended),
			service.WithStore(store),
			service.WithRecorder(recorder),
			service.WithLogger(logger.Discard()),
		)
	})

	It("runs the selected kernels with defaults", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"answer", "noop"}})
		Expect(err).NotTo(HaveOccurred())

		Expect(domain.ValidateRunID(run.ID)).To(Succeed())
		Expect(run.Trials).To(Equal(5))
		Expect(run.Warmup).To(Equal(1))
		Expect(run.Kernels).To(Equal([]string{"answer", "noop"}))
		Expect(run.Results).To(HaveLen(2))
		Expect(run.Cancelled).To(BeFalse())
		Expect(run.Host.NumCPU).To(BeNumerically(">", 0))

		answer, ok := run.Result("answer")
		Expect(ok).To(BeTrue())
		Expect(answer.Samples).To(HaveLen(5))
		Expect(answer.Value).To(Equal("42"))
		Expect(answer.Consistent).To(BeTrue())
		Expect(answer.Stats.Max).To(BeNumerically(">=", answer.Stats.Min))

		Expect(recorder.calls["answer"]).To(Equal(5))
		Expect(recorder.runs).To(Equal(1))
		Expect(store.Len()).To(Equal(1))
	})

	It("times result-less kernels through Run", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"noop"}, Trials: 4, Warmup: intPtr(2)})
		Expect(err).NotTo(HaveOccurred())

		noop, ok := run.Result("noop")
		Expect(ok).To(BeTrue())
		Expect(noop.Samples).To(HaveLen(4))
		Expect(noop.Value).To(BeEmpty())
		Expect(noop.Consistent).To(BeTrue())
		Expect(noops.Load()).To(Equal(int64(6)))
	})

	It("keeps results in catalogue order under parallelism", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{
			Suite:       "all",
			Kernels:     []string{"noop", "answer", "drift"},
			Trials:      3,
			Parallelism: 3,
		})
		Expect(err).NotTo(HaveOccurred())

		var labels []string
		for _, r := range run.Results {
			labels = append(labels, r.Label)
		}
		Expect(labels).To(Equal([]string{"noop", "answer", "drift"}))
	})

	It("records a panicking kernel as aborted and continues", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Trials: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Results).To(HaveLen(3))
		Expect(run.Failures()).To(Equal(1))

		boom, _ := run.Result("boom")
		Expect(boom.Failed()).To(BeTrue())
		Expect(boom.ErrorCode).To(Equal(domain.ErrKernelAborted.Code))
		Expect(boom.Error).To(ContainSubstring("index out of range"))
		Expect(recorder.failures["boom"]).To(Equal(1))

		noop, _ := run.Result("noop")
		Expect(noop.Failed()).To(BeFalse())
	})

	It("flags kernels whose value changes between trials", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"drift"}, Trials: 3})
		Expect(err).NotTo(HaveOccurred())

		r, _ := run.Result("drift")
		Expect(r.Consistent).To(BeFalse())
	})

	It("labels beast rounds", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Suite: "beast", Trials: 1, Parallelism: 8})
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Suite).To(Equal(domain.SuiteBeast))
		Expect(run.Results).To(HaveLen(3 * domain.BeastRounds))

		Expect(run.Results[0].Label).To(Equal("answer"))
		Expect(run.Results[3].Label).To(Equal("answer 2"))
		Expect(run.Results[3].Round).To(Equal(2))
		last := run.Results[len(run.Results)-1]
		Expect(last.Label).To(Equal("boom 50"))
	})

	It("skips history when asked", func() {
		_, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"noop"}, NoHistory: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Len()).To(BeZero())
	})

	It("returns and saves a partial run on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run, err := runner.Run(ctx, service.RunRequest{})
		Expect(err).To(MatchError(domain.ErrRunCancelled))
		Expect(run).NotTo(BeNil())
		Expect(run.Cancelled).To(BeTrue())
		Expect(store.Len()).To(Equal(1))
	})

	It("stops between kernels when cancelled mid-run", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var once sync.Once
		r := service.NewRunner(
			service.NewCatalogueFrom(fakeCore(), nil),
			service.WithLogger(logger.Discard()),
			service.WithProgress(func(service.Progress) { once.Do(cancel) }),
		)

		run, err := r.Run(ctx, service.RunRequest{Suite: "beast", Trials: 1})
		Expect(err).To(MatchError(domain.ErrRunCancelled))
		Expect(len(run.Results)).To(BeNumerically("<", 3*domain.BeastRounds))
	})

	It("reports progress for every job", func() {
		var mu sync.Mutex
		var seen []service.Progress
		r := service.NewRunner(
			service.NewCatalogueFrom(fakeCore(), nil),
			service.WithLogger(logger.Discard()),
			service.WithProgress(func(p service.Progress) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, p)
			}),
		)

		_, err := r.Run(context.Background(), service.RunRequest{Trials: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(3))
		Expect(seen[2].Done).To(Equal(3))
		Expect(seen[2].Total).To(Equal(3))
	})

	It("applies replaced defaults to later runs", func() {
		d := runner.Defaults()
		d.Trials = 2
		runner.SetDefaults(d)

		run, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"noop"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Trials).To(Equal(2))
	})

	DescribeTable("rejects invalid requests",
		func(req service.RunRequest, want error) {
			run, err := runner.Run(context.Background(), req)
			Expect(err).To(MatchError(want))
			Expect(run).To(BeNil())
			Expect(store.Len()).To(BeZero())
		},
		Entry("negative trials", service.RunRequest{Trials: -1}, domain.ErrInvalidRun),
		Entry("too many trials", service.RunRequest{Trials: service.MaxTrials + 1}, domain.ErrInvalidRun),
		Entry("negative warmup", service.RunRequest{Warmup: intPtr(-1)}, domain.ErrInvalidRun),
		Entry("excess parallelism", service.RunRequest{Parallelism: service.MaxParallelism + 1}, domain.ErrInvalidRun),
		Entry("long pause", service.RunRequest{PauseMillis: 60_000}, domain.ErrInvalidRun),
		Entry("unknown suite", service.RunRequest{Suite: "turbo"}, domain.ErrInvalidRun),
		Entry("duplicate kernel", service.RunRequest{Kernels: []string{"noop", "noop"}}, domain.ErrInvalidRun),
		Entry("unknown kernel", service.RunRequest{Kernels: []string{"quickSort"}}, domain.ErrKernelNotFound),
	)

	It("honours an explicit zero warmup", func() {
		run, err := runner.Run(context.Background(), service.RunRequest{Kernels: []string{"drift"}, Trials: 1, Warmup: intPtr(0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Warmup).To(BeZero())

		r, _ := run.Result("drift")
		Expect(r.Value).To(Equal("1"))
	})

	It("formats beast labels", func() {
		Expect(service.Label("fibonacci", 1)).To(Equal("fibonacci"))
		Expect(service.Label("fibonacci", 12)).To(Equal("fibonacci 12"))
	})
})
