package mysql

import (
	"context"

	appDomain "motac-hrms/internal/domain/application"

	"gorm.io/gorm"
)

type EmailApplicationRepository struct{ db *gorm.DB }

func NewEmailApplicationRepository(db *gorm.DB) *EmailApplicationRepository {
	return &EmailApplicationRepository{db: db}
}

func (r *EmailApplicationRepository) Create(ctx context.Context, a *appDomain.EmailApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *EmailApplicationRepository) Save(ctx context.Context, a *appDomain.EmailApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *EmailApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.EmailApplication, error) {
	var out appDomain.EmailApplication
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *EmailApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.EmailApplication, error) {
	var out appDomain.EmailApplication
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

// ClaimForProvisioning is the conditional claim that serializes concurrent
// provisioning attempts: the single UPDATE both checks the status and moves
// it, so only one caller ever sees RowsAffected == 1.
func (r *EmailApplicationRepository) ClaimForProvisioning(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.EmailApplication{}).
		Where("id = ? AND status = ?", id, appDomain.EmailStatusPendingAdmin).
		Updates(map[string]any{
			"status":            appDomain.EmailStatusProcessing,
			"status_updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *EmailApplicationRepository) UpdateStatusIf(ctx context.Context, id uint64, next appDomain.EmailStatus, from ...appDomain.EmailStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.EmailApplication{}).
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
