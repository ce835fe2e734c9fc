package mysql

import (
	"context"
	"errors"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:            &UserRepository{db: tx},
		EmailApps:        &EmailApplicationRepository{db: tx},
		LoanApps:         &LoanApplicationRepository{db: tx},
		Approvals:        &ApprovalRepository{db: tx},
		Equipment:        &EquipmentRepository{db: tx},
		LoanTransactions: &LoanTransactionRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.LoanApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front to prevent races
		a, err := r.LoanApps.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return application.ErrNotFound
			}
			return err
		}
		return fn(r, a)
	})
}
