package equipment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("equipment not found")
	ErrNotAvailable = errors.New("equipment is not available for issuance")
	ErrNotOnLoan    = errors.New("equipment is not on loan")
)

type Status string

const (
	StatusAvailable        Status = "available"
	StatusOnLoan           Status = "on_loan"
	StatusUnderMaintenance Status = "under_maintenance"
	StatusDisposed         Status = "disposed"
	StatusLost             Status = "lost"
	StatusDamaged          Status = "damaged"
)

// Equipment is a long-lived shared inventory asset; loan transactions
// reference it but never own it.
type Equipment struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	TagID           string         `gorm:"size:64;uniqueIndex:ux_equipment_tag_active" json:"tag_id"`
	AssetType       string         `gorm:"size:64" json:"asset_type"`
	Brand           string         `gorm:"size:128" json:"brand"`
	Model           string         `gorm:"size:128" json:"model"`
	SerialNumber    string         `gorm:"size:128" json:"serial_number"`
	Status          Status         `gorm:"type:enum('available','on_loan','under_maintenance','disposed','lost','damaged');default:'available'" json:"status"`
	CurrentLocation string         `gorm:"size:255" json:"current_location"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Equipment) TableName() string { return "equipment" }
