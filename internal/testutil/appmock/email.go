package appmock

import (
	"context"

	domain "motac-hrms/internal/domain/application"
)

var _ domain.EmailRepository = (*EmailRepo)(nil)

// EmailRepo is a function-backed mock satisfying application.EmailRepository.
// Fill in the fields a test needs; unfilled ones return zero values.
type EmailRepo struct {
	CreateFn               func(ctx context.Context, a *domain.EmailApplication) error
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.EmailApplication, error)
	GetByApplicationIDFn   func(ctx context.Context, applicationID string) (*domain.EmailApplication, error)
	SaveFn                 func(ctx context.Context, a *domain.EmailApplication) error
	ClaimForProvisioningFn func(ctx context.Context, id uint64) (bool, error)
	UpdateStatusIfFn       func(ctx context.Context, id uint64, next domain.EmailStatus, from ...domain.EmailStatus) (bool, error)
}

func (m *EmailRepo) Create(ctx context.Context, a *domain.EmailApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *EmailRepo) GetByID(ctx context.Context, id uint64) (*domain.EmailApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *EmailRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.EmailApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *EmailRepo) Save(ctx context.Context, a *domain.EmailApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *EmailRepo) ClaimForProvisioning(ctx context.Context, id uint64) (bool, error) {
	if m.ClaimForProvisioningFn != nil {
		return m.ClaimForProvisioningFn(ctx, id)
	}
	return true, nil
}

func (m *EmailRepo) UpdateStatusIf(ctx context.Context, id uint64, next domain.EmailStatus, from ...domain.EmailStatus) (bool, error) {
	if m.UpdateStatusIfFn != nil {
		return m.UpdateStatusIfFn(ctx, id, next, from...)
	}
	return true, nil
}
