package mysql

import (
	"context"

	equipDomain "motac-hrms/internal/domain/equipment"

	"gorm.io/gorm"
)

type EquipmentRepository struct{ db *gorm.DB }

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository { return &EquipmentRepository{db: db} }

func (r *EquipmentRepository) Create(ctx context.Context, e *equipDomain.Equipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EquipmentRepository) Save(ctx context.Context, e *equipDomain.Equipment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EquipmentRepository) GetByTagID(ctx context.Context, tagID string) (*equipDomain.Equipment, error) {
	var out equipDomain.Equipment
	res := r.db.WithContext(ctx).Where("tag_id = ?", tagID).First(&out)
	return &out, res.Error
}

// UpdateStatusIf is the same conditional-update shape used for application
// claims; losing the race returns (false, nil), never an error.
func (r *EquipmentRepository) UpdateStatusIf(ctx context.Context, id uint64, next, from equipDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&equipDomain.Equipment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
