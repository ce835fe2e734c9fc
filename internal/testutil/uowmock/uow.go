package uowmock

import (
	"context"
	"errors"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock satisfying uow.UnitOfWork. Fill in the
// function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn                func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanApplicationTxFn func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.LoanApplication) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a UoW that runs callbacks immediately against the
// given repo bundle without any transaction, which is what most usecase
// tests want.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.LoanApplication) error) error {
			a, err := r.LoanApps.GetByApplicationIDForUpdate(ctx, applicationID)
			if err != nil {
				return err
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.LoanApplication) error) error {
	if m.WithinLoanApplicationTxFn != nil {
		return m.WithinLoanApplicationTxFn(ctx, applicationID, fn)
	}
	return errUnimplemented
}
