package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/pkg/cmap"
)

var _ service.RunStore = (*Store)(nil)

// Store keeps runs in a sharded map keyed by run ID.
type Store struct {
	runs *cmap.Map[*domain.Run]
}

// New creates an empty store.
func New() *Store {
	return &Store{runs: cmap.New[*domain.Run]()}
}

// Save stores run, replacing any run with the same ID.
func (s *Store) Save(_ context.Context, run *domain.Run) error {
	if err := domain.ValidateRunID(run.ID); err != nil {
		return err
	}
	s.runs.Set(run.ID, run)
	return nil
}

// Get returns the run with id.
func (s *Store) Get(_ context.Context, id string) (*domain.Run, error) {
	run, ok := s.runs.Get(id)
	if !ok {
		return nil, domain.ErrRunNotFound.WithDetails(id)
	}
	return run, nil
}

// List returns at most limit runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.runs.Snapshot()
	runs := make([]*domain.Run, 0, len(snap))
	for _, run := range snap {
		runs = append(runs, run)
	}
	slices.SortFunc(runs, func(a, b *domain.Run) int {
		return strings.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest(ctx context.Context) (*domain.Run, error) {
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
func (s *Store) Delete(_ context.Context, id string) error {
	if !s.runs.Delete(id) {
		return domain.ErrRunNotFound.WithDetails(id)
	}
	return nil
}

// Count returns the number of stored runs.
func (s *Store) Count() int {
	return s.runs.Count()
}
