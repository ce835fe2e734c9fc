package application

import (
	"time"

	"gorm.io/gorm"
)

type EmailStatus string

const (
	EmailStatusDraft              EmailStatus = "draft"
	EmailStatusPendingSupport     EmailStatus = "pending_support"
	EmailStatusPendingAdmin       EmailStatus = "pending_admin"
	EmailStatusProcessing         EmailStatus = "processing"
	EmailStatusCompleted          EmailStatus = "completed"
	EmailStatusProvisioningFailed EmailStatus = "provisioning_failed"
	EmailStatusAssignmentMissing  EmailStatus = "assignment_missing"
	EmailStatusRejected           EmailStatus = "rejected"
	EmailStatusCancelled          EmailStatus = "cancelled"
)

// AllEmailStatuses enumerates the closed status vocabulary, in lifecycle
// order. Consumers filtering by predicate iterate this list.
var AllEmailStatuses = []EmailStatus{
	EmailStatusDraft,
	EmailStatusPendingSupport,
	EmailStatusPendingAdmin,
	EmailStatusProcessing,
	EmailStatusCompleted,
	EmailStatusProvisioningFailed,
	EmailStatusAssignmentMissing,
	EmailStatusRejected,
	EmailStatusCancelled,
}

// emailTransitions is the closed transition table; a status not present as a
// key is terminal.
var emailTransitions = map[EmailStatus][]EmailStatus{
	EmailStatusDraft:              {EmailStatusPendingSupport, EmailStatusCancelled},
	EmailStatusPendingSupport:     {EmailStatusPendingAdmin, EmailStatusRejected, EmailStatusCancelled},
	EmailStatusPendingAdmin:       {EmailStatusProcessing, EmailStatusAssignmentMissing, EmailStatusRejected, EmailStatusCancelled},
	EmailStatusAssignmentMissing:  {EmailStatusPendingAdmin, EmailStatusCancelled},
	EmailStatusProcessing:         {EmailStatusCompleted, EmailStatusProvisioningFailed},
}

func (s EmailStatus) CanTransitionTo(next EmailStatus) bool {
	for _, allowed := range emailTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further automated transition is permitted.
func (s EmailStatus) IsTerminal() bool {
	_, ok := emailTransitions[s]
	return !ok
}

// IsTerminalSuccess is true only for the state a successful provisioning run
// ends in.
func (s EmailStatus) IsTerminalSuccess() bool { return s == EmailStatusCompleted }

func (s EmailStatus) IsPending() bool {
	return s == EmailStatusPendingSupport || s == EmailStatusPendingAdmin
}

type EmailApplication struct {
	ID                  uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID       string         `gorm:"size:32;uniqueIndex:ux_email_apps_app_id_active" json:"application_id"`
	ApplicantID         string         `gorm:"size:32;index:idx_email_apps_applicant" json:"applicant_id"`
	Purpose             string         `gorm:"type:text" json:"purpose"`
	ProposedEmail       string         `gorm:"size:255" json:"proposed_email"`
	FinalAssignedEmail  string         `gorm:"size:255" json:"final_assigned_email"`
	FinalAssignedUserID string         `gorm:"size:64" json:"final_assigned_user_id"`
	Status              EmailStatus    `gorm:"type:enum('draft','pending_support','pending_admin','processing','completed','provisioning_failed','assignment_missing','rejected','cancelled');default:'draft'" json:"status"`
	RejectionReason     string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	StatusUpdatedAt     time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	DecidedAt           *time.Time     `json:"decided_at,omitempty"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EmailApplication) TableName() string { return "email_applications" }

// HasAssignment reports whether at least one of the provisioning target
// fields is filled in; provisioning must not start without it.
func (a *EmailApplication) HasAssignment() bool {
	return a.FinalAssignedEmail != "" || a.FinalAssignedUserID != ""
}
