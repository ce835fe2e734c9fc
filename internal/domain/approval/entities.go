package approval

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("approval not found")
	ErrAlreadyPending = errors.New("a pending approval already exists for this stage")
	ErrAlreadyDecided = errors.New("approval already decided")
)

// ApprovableKind discriminates which application table ApprovableID points
// into. Every consumer must switch over both kinds.
type ApprovableKind string

const (
	KindEmail ApprovableKind = "email"
	KindLoan  ApprovableKind = "loan"
)

func (k ApprovableKind) Valid() bool { return k == KindEmail || k == KindLoan }

type Stage string

const (
	StageSupport Stage = "support"
	StageAdmin   Stage = "admin"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Approval records one officer's decision on one application at one workflow
// stage. At most one pending row may exist per (kind, approvable, stage).
type Approval struct {
	ID                uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalID        string         `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id_active"`
	ApprovableKind    ApprovableKind `gorm:"column:approvable_kind;type:enum('email','loan');not null;index:idx_approvals_approvable"`
	ApprovableID      uint64         `gorm:"column:approvable_id;not null;index:idx_approvals_approvable"`
	OfficerID         string         `gorm:"column:officer_id;type:char(32)"`
	Stage             Stage          `gorm:"column:stage;type:enum('support','admin');not null"`
	Status            Status         `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending'"`
	Comments          string         `gorm:"column:comments;type:text"`
	ApprovalTimestamp *time.Time     `gorm:"column:approval_timestamp"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Approval) TableName() string { return "approvals" }

// Decide moves a pending approval to its final state.
func (a *Approval) Decide(officerID string, approved bool, comments string, at time.Time) error {
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}
	a.OfficerID = officerID
	a.Comments = comments
	a.ApprovalTimestamp = &at
	if approved {
		a.Status = StatusApproved
	} else {
		a.Status = StatusRejected
	}
	return nil
}
