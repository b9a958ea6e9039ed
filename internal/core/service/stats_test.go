package service_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

func ms(v ...int) []time.Duration {
	out := make([]time.Duration, len(v))
	for i, n := range v {
		out[i] = time.Duration(n) * time.Millisecond
	}
	return out
}

var _ = Describe("ComputeStats", func() {
	It("summarises odd-length samples", func() {
		st := service.ComputeStats(ms(5, 1, 4, 2, 3), 3000)

		Expect(st.Min).To(Equal(time.Millisecond))
		Expect(st.Max).To(Equal(5 * time.Millisecond))
		Expect(st.Mean).To(Equal(3 * time.Millisecond))
		Expect(st.Median).To(Equal(3 * time.Millisecond))
		Expect(st.P95).To(Equal(5 * time.Millisecond))
		Expect(st.StdDev).To(BeNumerically("~", 1414213*time.Nanosecond, time.Microsecond))
		Expect(st.OpsPerSec).To(BeNumerically("~", 1e6, 1))
	})

	It("averages the middle pair for even-length samples", func() {
		st := service.ComputeStats(ms(4, 1, 3, 2), 0)
		Expect(st.Median).To(Equal(2500 * time.Microsecond))
		Expect(st.OpsPerSec).To(BeZero())
	})

	It("uses nearest rank for p95", func() {
		samples := make([]time.Duration, 100)
		for i := range samples {
			samples[i] = time.Duration(i+1) * time.Millisecond
		}
		Expect(service.ComputeStats(samples, 1).P95).To(Equal(95 * time.Millisecond))
	})

	It("handles a single sample", func() {
		st := service.ComputeStats(ms(7), 7)
		Expect(st.Min).To(Equal(st.Max))
		Expect(st.P95).To(Equal(7 * time.Millisecond))
		Expect(st.StdDev).To(BeZero())
	})

	It("returns zero stats without samples", func() {
		Expect(service.ComputeStats(nil, 100)).To(Equal(domain.Stats{}))
	})

	It("does not reorder the caller's samples", func() {
		samples := ms(3, 1, 2)
		service.ComputeStats(samples, 1)
		Expect(samples).To(Equal(ms(3, 1, 2)))
	})
})
