package emailapp

import (
	"time"

	"motac-hrms/internal/domain/application"
)

type CreateInput struct {
	Purpose       string `json:"purpose"`
	ProposedEmail string `json:"proposed_email"`
}

type AssignmentInput struct {
	FinalAssignedEmail  string `json:"final_assigned_email"`
	FinalAssignedUserID string `json:"final_assigned_user_id"`
}

type DTO struct {
	ApplicationID       string    `json:"application_id"`
	ApplicantID         string    `json:"applicant_id"`
	Purpose             string    `json:"purpose"`
	ProposedEmail       string    `json:"proposed_email"`
	FinalAssignedEmail  string    `json:"final_assigned_email,omitempty"`
	FinalAssignedUserID string    `json:"final_assigned_user_id,omitempty"`
	Status              string    `json:"status"`
	RejectionReason     string    `json:"rejection_reason,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func toDTO(a *application.EmailApplication) *DTO {
	return &DTO{
		ApplicationID:       a.ApplicationID,
		ApplicantID:         a.ApplicantID,
		Purpose:             a.Purpose,
		ProposedEmail:       a.ProposedEmail,
		FinalAssignedEmail:  a.FinalAssignedEmail,
		FinalAssignedUserID: a.FinalAssignedUserID,
		Status:              string(a.Status),
		RejectionReason:     a.RejectionReason,
		CreatedAt:           a.CreatedAt,
	}
}
