package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

var _ = Describe("History", func() {
	var (
		ctx     context.Context
		store   *memStore
		history *service.History
		ids     []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemStore()
		history = service.NewHistory(store)
		ids = nil
		for _, mean := range []time.Duration{20 * time.Millisecond, 10 * time.Millisecond} {
			id, err := domain.GenerateRunID()
			Expect(err).NotTo(HaveOccurred())
			Expect(store.Save(ctx, &domain.Run{ID: id, Results: []domain.Result{result("fibonacci", mean)}})).To(Succeed())
			ids = append(ids, id)
		}
	})

	It("lists newest first", func() {
		runs, err := history.List(ctx, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(2))
		Expect(runs[0].ID).To(Equal(ids[1]))

		runs, err = history.List(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))

		_, err = history.List(ctx, -1)
		Expect(err).To(MatchError(domain.ErrBadRequest))
	})

	It("resolves the latest alias", func() {
		run, err := history.Get(ctx, "latest")
		Expect(err).NotTo(HaveOccurred())
		Expect(run.ID).To(Equal(ids[1]))
	})

	It("rejects malformed IDs before touching the store", func() {
		_, err := history.Get(ctx, "not-a-ulid")
		Expect(err).To(MatchError(domain.ErrRunNotFound))
		Expect(history.Delete(ctx, "../etc")).To(MatchError(domain.ErrRunNotFound))
	})

	It("deletes runs", func() {
		Expect(history.Delete(ctx, ids[0])).To(Succeed())
		_, err := history.Get(ctx, ids[0])
		Expect(err).To(MatchError(domain.ErrRunNotFound))
		Expect(history.Delete(ctx, ids[0])).To(MatchError(domain.ErrRunNotFound))
	})

	It("compares two stored runs", func() {
		cmp, err := history.Compare(ctx, ids[0], "latest")
		Expect(err).NotTo(HaveOccurred())
		Expect(cmp.Speedups).To(HaveLen(1))
		Expect(cmp.Speedups[0].Ratio).To(BeNumerically("~", 2.0, 1e-12))
	})

	It("reports an empty history", func() {
		_, err := service.NewHistory(newMemStore()).Latest(ctx)
		Expect(err).To(MatchError(domain.ErrRunNotFound))
	})
})
