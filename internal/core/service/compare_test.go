package service_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

func result(label string, mean time.Duration) domain.Result {
	return domain.Result{Label: label, Kernel: label, Stats: domain.Stats{Mean: mean}}
}

var _ = Describe("Compare", func() {
	var baseline, current *domain.Run

	BeforeEach(func() {
		baseline = &domain.Run{ID: "base", Results: []domain.Result{
			result("fibonacci", 40*time.Millisecond),
			result("rayTrace", 10*time.Millisecond),
			result("sha256", 8*time.Millisecond),
		}}
		current = &domain.Run{ID: "cur", Results: []domain.Result{
			result("fibonacci", 10*time.Millisecond),
			result("rayTrace", 20*time.Millisecond),
			result("mandelbrot", 5*time.Millisecond),
		}}
	})

	It("computes baseline over current per shared label", func() {
		cmp := service.Compare(baseline, current)

		Expect(cmp.BaselineID).To(Equal("base"))
		Expect(cmp.CurrentID).To(Equal("cur"))
		Expect(cmp.Speedups).To(HaveLen(2))
		Expect(cmp.Speedups[0].Label).To(Equal("fibonacci"))
		Expect(cmp.Speedups[0].Ratio).To(BeNumerically("~", 4.0, 1e-12))
		Expect(cmp.Speedups[1].Ratio).To(BeNumerically("~", 0.5, 1e-12))
		Expect(cmp.Geomean).To(BeNumerically("~", 1.4142135623730951, 1e-12))
	})

	It("reports labels present in only one run", func() {
		cmp := service.Compare(baseline, current)
		Expect(cmp.Missing).To(ConsistOf("mandelbrot", "sha256"))
	})

	It("treats failed results as missing", func() {
		current.Results[0].Error = "kernel aborted"
		cmp := service.Compare(baseline, current)

		Expect(cmp.Speedups).To(HaveLen(1))
		Expect(cmp.Missing).To(ContainElement("fibonacci"))
	})

	It("leaves the geomean zero without speedups", func() {
		cmp := service.Compare(&domain.Run{}, current)
		Expect(cmp.Speedups).To(BeEmpty())
		Expect(cmp.Geomean).To(BeZero())
	})
})
