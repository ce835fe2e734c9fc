package provisioning

import "motac-hrms/internal/domain/application"

type Code string

const (
	CodeAlreadyInFinalState       Code = "already_in_final_state"
	CodeAlreadyInProgress         Code = "already_in_progress"
	CodeAssignmentMissing         Code = "assignment_missing"
	CodeApplicationNotFound       Code = "application_not_found"
	CodeNotInProvisionableState   Code = "not_in_provisionable_state"
	CodeProvisioningSuccess       Code = "provisioning_success"
	CodeProvisioningServiceFailed Code = "provisioning_service_failed"
	CodeUnexpectedError           Code = "unexpected_error"
)

// Result is the explicit outcome envelope of one provisioning attempt.
// Every path yields a machine-readable code plus a human-readable message;
// nothing escapes as a raw error.
type Result struct {
	Code              Code
	Message           string
	ApplicationStatus application.EmailStatus
	AssignedEmail     string
	AssignedUserID    string
	CurrentStatus     string
	AllowedStatuses   []string
	ErrorDetail       string
}
