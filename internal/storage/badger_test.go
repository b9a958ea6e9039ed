package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

func openTestStore(t *testing.T, dir string) *BadgerStore {
	t.Helper()
	cfg := DefaultConfig(dir)
	cfg.GCInterval = time.Hour
	s, err := Open(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newRun(t *testing.T, label string) *domain.Run {
	t.Helper()
	id, err := domain.GenerateRunID()
	if err != nil {
		t.Fatal(err)
	}
	return &domain.Run{
		ID:     id,
		Suite:  domain.SuiteCore,
		Trials: 3,
		Results: []domain.Result{{
			Label:   label,
			Kernel:  label,
			Samples: []time.Duration{time.Millisecond, 2 * time.Millisecond},
			Stats:   domain.Stats{Mean: 1500 * time.Microsecond},
			Value:   "832040",
		}},
	}
}

func TestBadgerStore_SaveGet(t *testing.T) {
	s := openTestStore(t, "")
	ctx := context.Background()

	run := newRun(t, "fibonacci")
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != run.ID || got.Trials != 3 {
		t.Errorf("Get() = %+v, want ID %s trials 3", got, run.ID)
	}
	if got.Results[0].Stats.Mean != 1500*time.Microsecond {
		t.Errorf("mean = %v, want 1.5ms", got.Results[0].Stats.Mean)
	}
	if len(got.Results[0].Samples) != 2 {
		t.Errorf("samples = %d, want 2", len(got.Results[0].Samples))
	}
}

func TestBadgerStore_GetMissing(t *testing.T) {
	s := openTestStore(t, "")

	id, _ := domain.GenerateRunID()
	_, err := s.Get(context.Background(), id)
	if !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("Get() error = %v, want ErrRunNotFound", err)
	}
}

func TestBadgerStore_SaveRejectsBadID(t *testing.T) {
	s := openTestStore(t, "")

	err := s.Save(context.Background(), &domain.Run{ID: "../escape"})
	if !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("Save() error = %v, want ErrRunNotFound", err)
	}
}

func TestBadgerStore_ListNewestFirst(t *testing.T) {
	s := openTestStore(t, "")
	ctx := context.Background()

	var ids []string
	for _, label := range []string{"a", "b", "c", "d"} {
		run := newRun(t, label)
		if err := s.Save(ctx, run); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("List() returned %d runs, want 4", len(runs))
	}
	for i, run := range runs {
		if want := ids[len(ids)-1-i]; run.ID != want {
			t.Errorf("runs[%d] = %s, want %s", i, run.ID, want)
		}
	}

	runs, err = s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != ids[3] {
		t.Errorf("List(2) = %d runs starting %s", len(runs), runs[0].ID)
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != ids[3] {
		t.Errorf("Latest() = %s, want %s", latest.ID, ids[3])
	}
}

func TestBadgerStore_LatestEmpty(t *testing.T) {
	s := openTestStore(t, "")

	if _, err := s.Latest(context.Background()); !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("Latest() error = %v, want ErrRunNotFound", err)
	}
}

func TestBadgerStore_Delete(t *testing.T) {
	s := openTestStore(t, "")
	ctx := context.Background()

	run := newRun(t, "sha256")
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
	if err := s.Delete(ctx, run.ID); !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("second Delete() error = %v, want ErrRunNotFound", err)
	}
}

func TestBadgerStore_ListCancelled(t *testing.T) {
	s := openTestStore(t, "")
	if err := s.Save(context.Background(), newRun(t, "x")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.List(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}

func TestBadgerStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	run := newRun(t, "mandelbrot")

	cfg := DefaultConfig(dir)
	s, err := Open(cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Save(ctx, run); !errors.Is(err, ErrClosed) {
		t.Errorf("Save() after close error = %v, want ErrClosed", err)
	}

	reopened := openTestStore(t, dir)
	got, err := reopened.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Results[0].Label != "mandelbrot" {
		t.Errorf("label = %s, want mandelbrot", got.Results[0].Label)
	}

	if _, err := reopened.GC(); err != nil {
		t.Errorf("GC() error = %v", err)
	}
}

func TestBadgerStore_Metrics(t *testing.T) {
	s := openTestStore(t, "")
	for i := 0; i < 3; i++ {
		if err := s.Save(context.Background(), newRun(t, "k")); err != nil {
			t.Fatal(err)
		}
	}

	registry := prometheus.NewRegistry()
	s.RegisterMetrics(registry, 0)

	if got := testutil.ToFloat64(s.metricsRuns); got != 3 {
		t.Errorf("runs gauge = %v, want 3", got)
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Runs != 3 {
		t.Errorf("Stats().Runs = %d, want 3", st.Runs)
	}
}
