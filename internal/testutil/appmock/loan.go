package appmock

import (
	"context"
	"time"

	domain "motac-hrms/internal/domain/application"
)

var _ domain.LoanRepository = (*LoanRepo)(nil)

// LoanRepo is a function-backed mock satisfying application.LoanRepository.
type LoanRepo struct {
	CreateFn                      func(ctx context.Context, a *domain.LoanApplication) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	SaveFn                        func(ctx context.Context, a *domain.LoanApplication) error
	UpdateStatusIfFn              func(ctx context.Context, id uint64, next domain.LoanStatus, from ...domain.LoanStatus) (bool, error)
	ListIssuedPastDueFn           func(ctx context.Context, now time.Time) ([]*domain.LoanApplication, error)
}

func (m *LoanRepo) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *LoanRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *LoanRepo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *LoanRepo) Save(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *LoanRepo) UpdateStatusIf(ctx context.Context, id uint64, next domain.LoanStatus, from ...domain.LoanStatus) (bool, error) {
	if m.UpdateStatusIfFn != nil {
		return m.UpdateStatusIfFn(ctx, id, next, from...)
	}
	return true, nil
}

func (m *LoanRepo) ListIssuedPastDue(ctx context.Context, now time.Time) ([]*domain.LoanApplication, error) {
	if m.ListIssuedPastDueFn != nil {
		return m.ListIssuedPastDueFn(ctx, now)
	}
	return nil, nil
}
