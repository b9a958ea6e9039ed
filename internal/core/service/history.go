package service

import (
	"context"
	"strings"

	"github.com/yndnr/kernbench-go/internal/core/domain"
)

// LatestAlias refers to the most recent stored run wherever a run ID is accepted.
const LatestAlias = "latest"

// History queries stored runs.
type History struct {
	store RunStore
}

// NewHistory creates a History over store.
func NewHistory(store RunStore) *History {
	return &History{store: store}
}

// List returns at most limit runs, newest first.
func (h *History) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit < 0 {
		return nil, domain.ErrBadRequest.WithDetails("limit must not be negative")
	}
	runs, err := h.store.List(ctx, limit)
	if err != nil {
		return nil, domain.ErrStorage.WithCause(err)
	}
	return runs, nil
}

// Get returns the run with id, or the latest run for LatestAlias.
func (h *History) Get(ctx context.Context, id string) (*domain.Run, error) {
	if strings.EqualFold(id, LatestAlias) {
		return h.Latest(ctx)
	}
	if err := domain.ValidateRunID(id); err != nil {
		return nil, err
	}
	return h.wrap(h.store.Get(ctx, id))
}

// Latest returns the most recent run.
func (h *History) Latest(ctx context.Context) (*domain.Run, error) {
	return h.wrap(h.store.Latest(ctx))
}

// Delete removes a stored run.
func (h *History) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateRunID(id); err != nil {
		return err
	}
	if err := h.store.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, "") {
			return err
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Compare loads two runs and computes their speedups.
func (h *History) Compare(ctx context.Context, baselineID, currentID string) (*domain.Comparison, error) {
	baseline, err := h.Get(ctx, baselineID)
	if err != nil {
		return nil, err
	}
	current, err := h.Get(ctx, currentID)
	if err != nil {
		return nil, err
	}
	return Compare(baseline, current), nil
}

func (h *History) wrap(run *domain.Run, err error) (*domain.Run, error) {
	if err == nil {
		return run, nil
	}
	if domain.IsDomainError(err, "") {
		return nil, err
	}
	return nil, domain.ErrStorage.WithCause(err)
}
