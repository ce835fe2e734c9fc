package loanapp

import (
	"time"

	"motac-hrms/internal/domain/application"
)

type CreateInput struct {
	Purpose        string    `json:"purpose"`
	LoanStartDate  time.Time `json:"loan_start_date"`
	LoanEndDate    time.Time `json:"loan_end_date"`
	RequestedUnits int       `json:"requested_units"`
}

type IssueInput struct {
	EquipmentTagIDs    []string `json:"equipment_tag_ids"`
	Accessories        []string `json:"accessories"`
	ReceivingOfficerID string   `json:"receiving_officer_id"`
}

// ReturnOutcome maps to the transaction's terminal status.
type ReturnOutcome string

const (
	OutcomeReturned ReturnOutcome = "returned"
	OutcomeLost     ReturnOutcome = "lost"
	OutcomeDamaged  ReturnOutcome = "damaged"
)

type ReturnInput struct {
	TransactionID string        `json:"transaction_id"`
	Outcome       ReturnOutcome `json:"outcome"`
	Notes         string        `json:"notes"`
}

type DTO struct {
	ApplicationID   string    `json:"application_id"`
	ApplicantID     string    `json:"applicant_id"`
	Purpose         string    `json:"purpose"`
	LoanStartDate   time.Time `json:"loan_start_date"`
	LoanEndDate     time.Time `json:"loan_end_date"`
	RequestedUnits  int       `json:"requested_units"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type IssueResult struct {
	Application    *DTO     `json:"application"`
	TransactionIDs []string `json:"transaction_ids"`
	IssuedTagIDs   []string `json:"issued_tag_ids"`
	SkippedTagIDs  []string `json:"skipped_tag_ids,omitempty"`
}

func toDTO(a *application.LoanApplication) *DTO {
	return &DTO{
		ApplicationID:   a.ApplicationID,
		ApplicantID:     a.ApplicantID,
		Purpose:         a.Purpose,
		LoanStartDate:   a.LoanStartDate,
		LoanEndDate:     a.LoanEndDate,
		RequestedUnits:  a.RequestedUnits,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
}
