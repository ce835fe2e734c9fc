package uow

import (
	"context"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/loantx"
	"motac-hrms/internal/domain/user"
)

// Repos bundles every repository bound to the same transaction.
type Repos struct {
	Users            user.Repository
	EmailApps        application.EmailRepository
	LoanApps         application.LoanRepository
	Approvals        approval.Repository
	Equipment        equipment.Repository
	LoanTransactions loantx.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan application row first, then pass it in
	WithinLoanApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.LoanApplication) error) error
}
