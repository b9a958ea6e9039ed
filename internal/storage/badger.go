package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("run store closed")

// Stats describes the store's disk usage.
type Stats struct {
	Runs         int
	LSMSize      int64
	ValueLogSize int64
	LastGCTime   time.Time
}

var _ service.RunStore = (*BadgerStore)(nil)

// BadgerStore persists runs in Badger.
type BadgerStore struct {
	db     *badger.DB
	cfg    Config
	logger logger.Logger
	closed atomic.Bool

	lastGC atomic.Int64 // Unix milliseconds

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsRuns         prometheus.Gauge

	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open opens the store described by cfg.
func Open(cfg Config, l logger.Logger) (*BadgerStore, error) {
	if l == nil {
		l = logger.Default()
	}
	l = l.With("component", "storage")

	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory() {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: l}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.CacheSize > 0 {
		opts.BlockCacheSize = cfg.CacheSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		cfg:    cfg,
		logger: l,
		stopCh: make(chan struct{}),
	}

	if !cfg.InMemory() && cfg.GCInterval > 0 {
		s.wg.Add(1)
		go s.gcLoop()
	}

	l.Info("run store opened",
		"dir", cfg.Dir,
		"in_memory", cfg.InMemory())
	return s, nil
}

// Save writes run, replacing any run with the same ID.
func (s *BadgerStore) Save(_ context.Context, run *domain.Run) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := domain.ValidateRunID(run.ID); err != nil {
		return err
	}
	value, err := encodeRun(run)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.ID), value)
	})
}

// Get returns the run with id.
func (s *BadgerStore) Get(_ context.Context, id string) (*domain.Run, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var run *domain.Run
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrRunNotFound.WithDetails(id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			run, err = decodeRun(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns at most limit runs, newest first. limit <= 0 returns all.
func (s *BadgerStore) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var runs []*domain.Run
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runPrefix)
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the last key below the seek key.
		for it.Seek([]byte(runPrefix + "\xff")); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var run *domain.Run
			err := it.Item().Value(func(val []byte) error {
				var err error
				run, err = decodeRun(val)
				return err
			})
			if err != nil {
				return err
			}
			runs = append(runs, run)
			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Latest returns the most recent run.
func (s *BadgerStore) Latest(ctx context.Context) (*domain.Run, error) {
	runs, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrRunNotFound.WithDetails("no runs recorded")
	}
	return runs[0], nil
}

// Delete removes the run with id.
func (s *BadgerStore) Delete(_ context.Context, id string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := runKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrRunNotFound.WithDetails(id)
			}
			return err
		}
		return txn.Delete(key)
	})
}

// Count returns the number of stored runs.
func (s *BadgerStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// GC rewrites value log files until Badger reports nothing to reclaim.
// It returns the number of files rewritten.
func (s *BadgerStore) GC() (int, error) {
	if s.cfg.InMemory() {
		return 0, nil
	}

	start := time.Now()
	rewritten := 0
	for {
		err := s.db.RunValueLogGC(s.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) {
				break
			}
			return rewritten, fmt.Errorf("gc: %w", err)
		}
		rewritten++
	}

	s.lastGC.Store(time.Now().UnixMilli())
	s.logger.Debug("value log gc completed",
		"rewritten", rewritten,
		"elapsed", time.Since(start))
	return rewritten, nil
}

// Stats returns size and run counts.
func (s *BadgerStore) Stats() (*Stats, error) {
	lsm, vlog := s.db.Size()
	runs, err := s.Count()
	if err != nil {
		return nil, err
	}
	st := &Stats{Runs: runs, LSMSize: lsm, ValueLogSize: vlog}
	if ms := s.lastGC.Load(); ms > 0 {
		st.LastGCTime = time.UnixMilli(ms)
	}
	return st, nil
}

// RegisterMetrics registers the store gauges with registry and refreshes
// them every interval.
func (s *BadgerStore) RegisterMetrics(registry prometheus.Registerer, interval time.Duration) *BadgerStore {
	s.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kernbench",
		Subsystem: "store",
		Name:      "lsm_size_bytes",
		Help:      "Badger LSM tree size in bytes",
	})
	s.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kernbench",
		Subsystem: "store",
		Name:      "value_log_size_bytes",
		Help:      "Badger value log size in bytes",
	})
	s.metricsRuns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kernbench",
		Subsystem: "store",
		Name:      "runs",
		Help:      "Number of stored runs",
	})
	registry.MustRegister(s.metricsLSMSize, s.metricsValueLogSize, s.metricsRuns)

	s.updateMetrics()
	if interval > 0 {
		s.wg.Add(1)
		go s.metricsLoop(interval)
	}
	return s
}

func (s *BadgerStore) updateMetrics() {
	st, err := s.Stats()
	if err != nil {
		return
	}
	s.metricsLSMSize.Set(float64(st.LSMSize))
	s.metricsValueLogSize.Set(float64(st.ValueLogSize))
	s.metricsRuns.Set(float64(st.Runs))
}

func (s *BadgerStore) metricsLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.updateMetrics()
		case <-s.stopCh:
			return
		}
	}
}

func (s *BadgerStore) gcLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.GC(); err != nil {
				s.logger.Error("value log gc failed", "error", err)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Close stops background loops and closes the database.
func (s *BadgerStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.stopCh)
		s.wg.Wait()
		if cerr := s.db.Close(); cerr != nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
		s.logger.Info("run store closed")
	})
	return err
}

// badgerLogger adapts logger.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Badger's info output is per-table chatter; it goes to debug.
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
