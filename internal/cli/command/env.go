package command

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"sync"

	"github.com/yndnr/kernbench-go/internal/cli/connection"
	"github.com/yndnr/kernbench-go/internal/config"
	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/infra/tlsroots"
	"github.com/yndnr/kernbench-go/internal/storage"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// env is the state shared by the commands of one invocation (or one shell
// session). Storage is opened on first use so commands that never touch
// history do not take the Badger directory lock.
type env struct {
	cfg        *config.Config
	configPath string
	overrides  map[string]any
	logger     logger.Logger
	catalogue  *service.Catalogue
	remote     *connection.Client

	storeOnce sync.Once
	store     *storage.BadgerStore
	storeErr  error
}

func newEnv(flags *GlobalFlags, overrides map[string]any, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(flags.Config, overrides)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(l)

	e := &env{
		cfg:        cfg,
		configPath: flags.Config,
		overrides:  overrides,
		logger:     l,
		catalogue:  service.NewCatalogue(),
	}

	if flags.Server != "" {
		var opts []connection.Option
		if flags.CAFile != "" {
			pool, err := tlsroots.LoadPool(flags.CAFile)
			if err != nil {
				return nil, err
			}
			opts = append(opts, connection.WithHTTPClient(&http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
				},
			}))
		}
		e.remote = connection.NewClient(flags.Server, opts...)
	}
	return e, nil
}

// openStore opens the Badger history store once.
func (e *env) openStore() (*storage.BadgerStore, error) {
	e.storeOnce.Do(func() {
		cfg := storage.DefaultConfig(e.cfg.Storage.DataDir)
		cfg.GCInterval = e.cfg.Storage.GCInterval
		cfg.SyncWrites = e.cfg.Storage.SyncWrites
		e.store, e.storeErr = storage.Open(cfg, e.logger)
		if e.storeErr != nil {
			e.storeErr = domain.ErrStorage.WithCause(e.storeErr)
		}
	})
	return e.store, e.storeErr
}

func (e *env) close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// backend returns the remote client when --server is set, else local services.
func (e *env) backend() backend {
	if e.remote != nil {
		return remoteBackend{e.remote}
	}
	return &localBackend{env: e}
}

// backend is what the commands need from either local services or a server.
type backend interface {
	Kernels(ctx context.Context) (core, extended []domain.Kernel, err error)
	Run(ctx context.Context, req service.RunRequest, progress func(service.Progress)) (*domain.Run, error)
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	DeleteRun(ctx context.Context, id string) error
	Compare(ctx context.Context, baseline, current string) (*domain.Comparison, error)
	Verify(ctx context.Context, extended bool) (*domain.Verification, error)

	// Local reports whether progress callbacks will be delivered.
	Local() bool
}

type localBackend struct {
	env *env
}

func (b *localBackend) Local() bool { return true }

func (b *localBackend) Kernels(context.Context) ([]domain.Kernel, []domain.Kernel, error) {
	return b.env.catalogue.Core(), b.env.catalogue.Extended(), nil
}

func (b *localBackend) Run(ctx context.Context, req service.RunRequest, progress func(service.Progress)) (*domain.Run, error) {
	opts := []service.RunnerOption{
		service.WithLogger(b.env.logger),
		service.WithDefaults(b.env.cfg.RunDefaults()),
	}
	if progress != nil {
		opts = append(opts, service.WithProgress(progress))
	}
	if b.env.cfg.Storage.NoHistory {
		req.NoHistory = true
	}
	if !req.NoHistory {
		store, err := b.env.openStore()
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithStore(store))
	}
	return service.NewRunner(b.env.catalogue, opts...).Run(ctx, req)
}

func (b *localBackend) history() (*service.History, error) {
	store, err := b.env.openStore()
	if err != nil {
		return nil, err
	}
	return service.NewHistory(store), nil
}

func (b *localBackend) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	h, err := b.history()
	if err != nil {
		return nil, err
	}
	runs, err := h.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, run.Summary())
	}
	return out, nil
}

func (b *localBackend) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	h, err := b.history()
	if err != nil {
		return nil, err
	}
	return h.Get(ctx, id)
}

func (b *localBackend) DeleteRun(ctx context.Context, id string) error {
	h, err := b.history()
	if err != nil {
		return err
	}
	return h.Delete(ctx, id)
}

func (b *localBackend) Compare(ctx context.Context, baseline, current string) (*domain.Comparison, error) {
	h, err := b.history()
	if err != nil {
		return nil, err
	}
	return h.Compare(ctx, baseline, current)
}

func (b *localBackend) Verify(ctx context.Context, extended bool) (*domain.Verification, error) {
	return service.NewVerifier(b.env.logger).Verify(ctx, extended)
}

type remoteBackend struct {
	*connection.Client
}

func (remoteBackend) Local() bool { return false }

func (b remoteBackend) Run(ctx context.Context, req service.RunRequest, _ func(service.Progress)) (*domain.Run, error) {
	return b.Client.Run(ctx, req)
}
