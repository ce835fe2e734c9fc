package loantx

import "context"

type Repository interface {
	Create(ctx context.Context, t *LoanTransaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*LoanTransaction, error)
	Save(ctx context.Context, t *LoanTransaction) error
	// ListOpenByApplication returns issued/overdue transactions for one
	// application.
	ListOpenByApplication(ctx context.Context, loanApplicationID uint64) ([]*LoanTransaction, error)
}
