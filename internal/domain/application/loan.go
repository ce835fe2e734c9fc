package application

import (
	"time"

	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusDraft           LoanStatus = "draft"
	LoanStatusPendingSupport  LoanStatus = "pending_support"
	LoanStatusPendingAdmin    LoanStatus = "pending_admin"
	LoanStatusApproved        LoanStatus = "approved"
	LoanStatusIssued          LoanStatus = "issued"
	LoanStatusPartiallyIssued LoanStatus = "partially_issued"
	LoanStatusReturned        LoanStatus = "returned"
	LoanStatusOverdue         LoanStatus = "overdue"
	LoanStatusCompleted       LoanStatus = "completed"
	LoanStatusRejected        LoanStatus = "rejected"
	LoanStatusCancelled       LoanStatus = "cancelled"
)

// AllLoanStatuses enumerates the closed status vocabulary, in lifecycle
// order.
var AllLoanStatuses = []LoanStatus{
	LoanStatusDraft,
	LoanStatusPendingSupport,
	LoanStatusPendingAdmin,
	LoanStatusApproved,
	LoanStatusIssued,
	LoanStatusPartiallyIssued,
	LoanStatusReturned,
	LoanStatusOverdue,
	LoanStatusCompleted,
	LoanStatusRejected,
	LoanStatusCancelled,
}

var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusDraft:           {LoanStatusPendingSupport, LoanStatusCancelled},
	LoanStatusPendingSupport:  {LoanStatusApproved, LoanStatusRejected, LoanStatusCancelled},
	LoanStatusPendingAdmin:    {LoanStatusApproved, LoanStatusRejected, LoanStatusCancelled},
	LoanStatusApproved:        {LoanStatusIssued, LoanStatusPartiallyIssued},
	LoanStatusPartiallyIssued: {LoanStatusIssued, LoanStatusReturned, LoanStatusOverdue},
	LoanStatusIssued:          {LoanStatusReturned, LoanStatusOverdue},
	LoanStatusOverdue:         {LoanStatusReturned},
	LoanStatusReturned:        {LoanStatusCompleted},
}

func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s LoanStatus) IsTerminal() bool {
	_, ok := loanTransitions[s]
	return !ok
}

func (s LoanStatus) IsPending() bool {
	return s == LoanStatusPendingSupport || s == LoanStatusPendingAdmin
}

// Issuable reports whether equipment may still be handed out against the
// application.
func (s LoanStatus) Issuable() bool {
	return s == LoanStatusApproved || s == LoanStatusPartiallyIssued
}

// Returnable reports whether a return can be processed.
func (s LoanStatus) Returnable() bool {
	return s == LoanStatusIssued || s == LoanStatusOverdue
}

type LoanApplication struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string         `gorm:"size:32;uniqueIndex:ux_loan_apps_app_id_active" json:"application_id"`
	ApplicantID     string         `gorm:"size:32;index:idx_loan_apps_applicant" json:"applicant_id"`
	Purpose         string         `gorm:"type:text" json:"purpose"`
	LoanStartDate   time.Time      `gorm:"type:date" json:"loan_start_date"`
	LoanEndDate     time.Time      `gorm:"type:date;index:idx_loan_apps_end_date" json:"loan_end_date"`
	RequestedUnits  int            `json:"requested_units"`
	Status          LoanStatus     `gorm:"type:enum('draft','pending_support','pending_admin','approved','issued','partially_issued','returned','overdue','completed','rejected','cancelled');default:'draft'" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	DecidedAt       *time.Time     `json:"decided_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
