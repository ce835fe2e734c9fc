package notification

import "time"

type EventType string

const (
	EventSubmission          EventType = "submission"
	EventApproval            EventType = "approval"
	EventRejection           EventType = "rejection"
	EventIssuance            EventType = "issuance"
	EventReturn              EventType = "return"
	EventOverdueReminder     EventType = "overdue_reminder"
	EventProvisioningFailure EventType = "provisioning_failure"
	EventWelcome             EventType = "welcome"
)

// Event carries everything needed to render and address one notification.
// Detail is event-specific: rejection reason, assigned mailbox, return notes.
type Event struct {
	Type           EventType
	ApplicationID  string
	ApplicantName  string
	RecipientEmail string
	Detail         string
	DueDate        *time.Time
	Attachments    []string
}
