package application

import (
	"context"
	"time"
)

type EmailRepository interface {
	Create(ctx context.Context, a *EmailApplication) error
	GetByID(ctx context.Context, id uint64) (*EmailApplication, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*EmailApplication, error)
	Save(ctx context.Context, a *EmailApplication) error

	// ClaimForProvisioning atomically moves the row from pending_admin to
	// processing. Returns false when zero rows were affected, i.e. another
	// caller already claimed it or the status changed underneath.
	ClaimForProvisioning(ctx context.Context, id uint64) (bool, error)

	// UpdateStatusIf sets status to next only while the current status is one
	// of from. Returns false when zero rows were affected.
	UpdateStatusIf(ctx context.Context, id uint64, next EmailStatus, from ...EmailStatus) (bool, error)
}

type LoanRepository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*LoanApplication, error)
	// GetByApplicationIDForUpdate locks the row for the enclosing transaction.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*LoanApplication, error)
	Save(ctx context.Context, a *LoanApplication) error
	UpdateStatusIf(ctx context.Context, id uint64, next LoanStatus, from ...LoanStatus) (bool, error)
	// ListIssuedPastDue returns applications still out on loan whose end date
	// has passed.
	ListIssuedPastDue(ctx context.Context, now time.Time) ([]*LoanApplication, error)
}
