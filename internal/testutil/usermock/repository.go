package usermock

import (
	"context"

	domain "motac-hrms/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying user.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, u *domain.User) error
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.User, error)
	SaveFn        func(ctx context.Context, u *domain.User) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}
