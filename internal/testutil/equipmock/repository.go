package equipmock

import (
	"context"

	domain "motac-hrms/internal/domain/equipment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying equipment.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, e *domain.Equipment) error
	GetByTagIDFn     func(ctx context.Context, tagID string) (*domain.Equipment, error)
	SaveFn           func(ctx context.Context, e *domain.Equipment) error
	UpdateStatusIfFn func(ctx context.Context, id uint64, next, from domain.Status) (bool, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Equipment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByTagID(ctx context.Context, tagID string) (*domain.Equipment, error) {
	if m.GetByTagIDFn != nil {
		return m.GetByTagIDFn(ctx, tagID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, e *domain.Equipment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) UpdateStatusIf(ctx context.Context, id uint64, next, from domain.Status) (bool, error) {
	if m.UpdateStatusIfFn != nil {
		return m.UpdateStatusIfFn(ctx, id, next, from)
	}
	return true, nil
}
