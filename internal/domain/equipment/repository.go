package equipment

import "context"

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByTagID(ctx context.Context, tagID string) (*Equipment, error)
	Save(ctx context.Context, e *Equipment) error

	// UpdateStatusIf flips status only while the current status equals from.
	// Returns false when zero rows were affected; callers treat that as a
	// lost race, not an error.
	UpdateStatusIf(ctx context.Context, id uint64, next, from Status) (bool, error)
}
