package mysql

import (
	"context"
	"time"

	appDomain "motac-hrms/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanApplicationRepository struct{ db *gorm.DB }

func NewLoanApplicationRepository(db *gorm.DB) *LoanApplicationRepository {
	return &LoanApplicationRepository{db: db}
}

func (r *LoanApplicationRepository) Create(ctx context.Context, a *appDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LoanApplicationRepository) Save(ctx context.Context, a *appDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *LoanApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	var out appDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

// GetByApplicationIDForUpdate takes a row lock; only meaningful inside a
// transaction (sqlite in tests ignores the clause, which is fine there).
func (r *LoanApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	var out appDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *LoanApplicationRepository) UpdateStatusIf(ctx context.Context, id uint64, next appDomain.LoanStatus, from ...appDomain.LoanStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.LoanApplication{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{
			"status":            next,
			"status_updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LoanApplicationRepository) ListIssuedPastDue(ctx context.Context, now time.Time) ([]*appDomain.LoanApplication, error) {
	var out []*appDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("status IN ? AND loan_end_date < ?",
			[]appDomain.LoanStatus{appDomain.LoanStatusIssued, appDomain.LoanStatusPartiallyIssued}, now).
		Order("loan_end_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
