package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// GetPending returns the single pending approval for an application stage.
	GetPending(ctx context.Context, kind ApprovableKind, approvableID uint64, stage Stage) (*Approval, error)

	GetByApprovalID(ctx context.Context, approvalID string) (*Approval, error)

	Save(ctx context.Context, a *Approval) error

	ListByApprovable(ctx context.Context, kind ApprovableKind, approvableID uint64) ([]*Approval, error)
}
