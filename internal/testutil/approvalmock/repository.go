package approvalmock

import (
	"context"

	domain "motac-hrms/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying approval.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Approval) error
	GetPendingFn       func(ctx context.Context, kind domain.ApprovableKind, approvableID uint64, stage domain.Stage) (*domain.Approval, error)
	GetByApprovalIDFn  func(ctx context.Context, approvalID string) (*domain.Approval, error)
	SaveFn             func(ctx context.Context, a *domain.Approval) error
	ListByApprovableFn func(ctx context.Context, kind domain.ApprovableKind, approvableID uint64) ([]*domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetPending(ctx context.Context, kind domain.ApprovableKind, approvableID uint64, stage domain.Stage) (*domain.Approval, error) {
	if m.GetPendingFn != nil {
		return m.GetPendingFn(ctx, kind, approvableID, stage)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Approval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByApprovable(ctx context.Context, kind domain.ApprovableKind, approvableID uint64) ([]*domain.Approval, error) {
	if m.ListByApprovableFn != nil {
		return m.ListByApprovableFn(ctx, kind, approvableID)
	}
	return nil, nil
}
