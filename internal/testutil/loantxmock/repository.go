package loantxmock

import (
	"context"

	domain "motac-hrms/internal/domain/loantx"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying loantx.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, t *domain.LoanTransaction) error
	GetByTransactionIDFn    func(ctx context.Context, transactionID string) (*domain.LoanTransaction, error)
	SaveFn                  func(ctx context.Context, t *domain.LoanTransaction) error
	ListOpenByApplicationFn func(ctx context.Context, loanApplicationID uint64) ([]*domain.LoanTransaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.LoanTransaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.LoanTransaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, t *domain.LoanTransaction) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListOpenByApplication(ctx context.Context, loanApplicationID uint64) ([]*domain.LoanTransaction, error) {
	if m.ListOpenByApplicationFn != nil {
		return m.ListOpenByApplicationFn(ctx, loanApplicationID)
	}
	return nil, nil
}
