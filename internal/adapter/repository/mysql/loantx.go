package mysql

import (
	"context"

	txDomain "motac-hrms/internal/domain/loantx"

	"gorm.io/gorm"
)

type LoanTransactionRepository struct{ db *gorm.DB }

func NewLoanTransactionRepository(db *gorm.DB) *LoanTransactionRepository {
	return &LoanTransactionRepository{db: db}
}

func (r *LoanTransactionRepository) Create(ctx context.Context, t *txDomain.LoanTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *LoanTransactionRepository) Save(ctx context.Context, t *txDomain.LoanTransaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *LoanTransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*txDomain.LoanTransaction, error) {
	var out txDomain.LoanTransaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	return &out, res.Error
}

func (r *LoanTransactionRepository) ListOpenByApplication(ctx context.Context, loanApplicationID uint64) ([]*txDomain.LoanTransaction, error) {
	var out []*txDomain.LoanTransaction
	res := r.db.WithContext(ctx).
		Where("loan_application_id = ? AND status IN ?",
			loanApplicationID, []txDomain.Status{txDomain.StatusIssued, txDomain.StatusOverdue}).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
