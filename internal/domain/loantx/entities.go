package loantx

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("loan transaction not found")
	ErrAlreadyClosed = errors.New("loan transaction already closed")
)

type Status string

const (
	StatusIssued   Status = "issued"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
	StatusLost     Status = "lost"
	StatusDamaged  Status = "damaged"
)

// Open reports whether the equipment is still out. Overdue transactions are
// open: the item has not come back yet.
func (s Status) Open() bool { return s == StatusIssued || s == StatusOverdue }

// LoanTransaction is one physical hand-off or return event tied to a loan
// application and an equipment unit. Rows are never deleted; terminal status
// closes them.
type LoanTransaction struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID      string         `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_loan_tx_id_active"`
	LoanApplicationID  uint64         `gorm:"column:loan_application_id;not null;index"`
	EquipmentID        uint64         `gorm:"column:equipment_id;not null;index"`
	Status             Status         `gorm:"column:status;type:enum('issued','returned','overdue','lost','damaged');default:'issued'"`
	IssuingOfficerID   string         `gorm:"column:issuing_officer_id;type:char(32)"`
	ReceivingOfficerID string         `gorm:"column:receiving_officer_id;type:char(32)"`
	ReturningOfficerID string         `gorm:"column:returning_officer_id;type:char(32)"`
	IssueTimestamp     time.Time      `gorm:"column:issue_timestamp"`
	ReturnTimestamp    *time.Time     `gorm:"column:return_timestamp"`
	Accessories        string         `gorm:"column:accessories;type:text"` // JSON-encoded checklist
	ReturnNotes        string         `gorm:"column:return_notes;type:text"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (LoanTransaction) TableName() string { return "loan_transactions" }

// Close finalizes the transaction with a return, loss or damage outcome.
func (t *LoanTransaction) Close(status Status, officerID, notes string, at time.Time) error {
	if !t.Status.Open() {
		return ErrAlreadyClosed
	}
	t.Status = status
	t.ReturningOfficerID = officerID
	t.ReturnNotes = notes
	t.ReturnTimestamp = &at
	return nil
}
