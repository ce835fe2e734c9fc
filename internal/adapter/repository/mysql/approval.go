package mysql

import (
	"context"

	approvalDomain "motac-hrms/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetPending(ctx context.Context, kind approvalDomain.ApprovableKind, approvableID uint64, stage approvalDomain.Stage) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approvable_kind = ? AND approvable_id = ? AND stage = ? AND status = ?",
			kind, approvableID, stage, approvalDomain.StatusPending).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ListByApprovable(ctx context.Context, kind approvalDomain.ApprovableKind, approvableID uint64) ([]*approvalDomain.Approval, error) {
	var out []*approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approvable_kind = ? AND approvable_id = ?", kind, approvableID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
