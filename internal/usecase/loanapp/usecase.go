package loanapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"motac-hrms/internal/domain/application"
	domainApproval "motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/loantx"
	"motac-hrms/internal/domain/uow"
	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/authz"
	"motac-hrms/internal/usecase/notification"
	"motac-hrms/pkg/id"

	"gorm.io/gorm"
)

var ErrNoEquipmentIssued = errors.New("none of the requested equipment could be issued")

type Usecase struct {
	uow           uow.UnitOfWork
	gate          *authz.Gate
	notifier      notification.Notifier
	log           *slog.Logger
	approverEmail string
}

func NewUsecase(tx uow.UnitOfWork, gate *authz.Gate, n notification.Notifier, approverEmail string, log *slog.Logger) *Usecase {
	return &Usecase{uow: tx, gate: gate, notifier: n, approverEmail: approverEmail, log: log}
}

func (u *Usecase) subject(a *application.LoanApplication) authz.Subject {
	return authz.Subject{Kind: domainApproval.KindLoan, OwnerID: a.ApplicantID, Status: string(a.Status)}
}

func (u *Usecase) Create(ctx context.Context, actor *user.User, in CreateInput) (*DTO, error) {
	d := u.gate.Can(actor, authz.ActionCreate, authz.Subject{Kind: domainApproval.KindLoan})
	if err := d.ErrIfDenied(); err != nil {
		return nil, err
	}
	if !in.LoanEndDate.After(in.LoanStartDate) {
		return nil, fmt.Errorf("loan end date must be after start date")
	}
	units := in.RequestedUnits
	if units <= 0 {
		units = 1
	}

	a := &application.LoanApplication{
		ApplicationID:   id.NewID32(),
		ApplicantID:     actor.UserID,
		Purpose:         in.Purpose,
		LoanStartDate:   in.LoanStartDate,
		LoanEndDate:     in.LoanEndDate,
		RequestedUnits:  units,
		Status:          application.LoanStatusDraft,
		StatusUpdatedAt: time.Now().UTC(),
	}
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.LoanApps.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, actor *user.User, applicationID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getLoan(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionView, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Submit(ctx context.Context, actor *user.User, applicationID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getLoan(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionUpdate, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.LoanStatusPendingSupport) {
			return application.ErrInvalidTransition
		}
		if err := openApproval(ctx, r, a.ID); err != nil {
			return err
		}
		a.Status = application.LoanStatusPendingSupport
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.LoanApps.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)

		name, _ := applicantContact(ctx, r, a.ApplicantID)
		u.notifier.Notify(ctx, notification.Event{
			Type:           notification.EventSubmission,
			ApplicationID:  a.ApplicationID,
			ApplicantName:  name,
			RecipientEmail: u.approverEmail,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Approve(ctx context.Context, actor *user.User, applicationID, comments string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getLoan(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionApprove, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if err := decideApproval(ctx, r, a.ID, actor.UserID, true, comments); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.LoanStatusApproved) {
			return application.ErrInvalidTransition
		}
		now := time.Now().UTC()
		a.Status = application.LoanStatusApproved
		a.StatusUpdatedAt = now
		a.DecidedAt = &now
		if err := r.LoanApps.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		u.notifyApplicant(ctx, r, a, notification.EventApproval, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, actor *user.User, applicationID, reason string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getLoan(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionReject, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if err := decideApproval(ctx, r, a.ID, actor.UserID, false, reason); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.LoanStatusRejected) {
			return application.ErrInvalidTransition
		}
		now := time.Now().UTC()
		a.Status = application.LoanStatusRejected
		a.RejectionReason = reason
		a.StatusUpdatedAt = now
		a.DecidedAt = &now
		if err := r.LoanApps.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		u.notifyApplicant(ctx, r, a, notification.EventRejection, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Cancel(ctx context.Context, actor *user.User, applicationID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getLoan(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionCancel, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.LoanStatusCancelled) {
			return application.ErrInvalidTransition
		}
		a.Status = application.LoanStatusCancelled
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.LoanApps.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Issue hands equipment out against an approved application. Each unit flips
// available -> on_loan with a conditional update; units that lost a race or
// are not available are skipped and reported, and the application lands in
// issued or partially_issued depending on how many units are out versus
// requested.
func (u *Usecase) Issue(ctx context.Context, actor *user.User, applicationID string, in IssueInput) (*IssueResult, error) {
	if len(in.EquipmentTagIDs) == 0 {
		return nil, fmt.Errorf("at least one equipment tag id is required")
	}
	var res *IssueResult
	err := u.uow.WithinLoanApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.LoanApplication) error {
		if err := u.gate.Can(actor, authz.ActionIssue, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}

		accessories, err := json.Marshal(in.Accessories)
		if err != nil {
			return err
		}
		receiving := in.ReceivingOfficerID
		if receiving == "" {
			receiving = a.ApplicantID
		}

		issued := &IssueResult{}
		now := time.Now().UTC()
		for _, tagID := range in.EquipmentTagIDs {
			e, err := r.Equipment.GetByTagID(ctx, tagID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, equipment.ErrNotFound) {
					issued.SkippedTagIDs = append(issued.SkippedTagIDs, tagID)
					continue
				}
				return err
			}
			if d := u.gate.CanEquipment(actor, authz.ActionIssue, e); !d.Allowed {
				u.log.Warn("equipment skipped during issuance", "tag_id", tagID, "reason", d.Reason)
				issued.SkippedTagIDs = append(issued.SkippedTagIDs, tagID)
				continue
			}
			flipped, err := r.Equipment.UpdateStatusIf(ctx, e.ID, equipment.StatusOnLoan, equipment.StatusAvailable)
			if err != nil {
				return err
			}
			if !flipped {
				issued.SkippedTagIDs = append(issued.SkippedTagIDs, tagID)
				continue
			}
			tx := &loantx.LoanTransaction{
				TransactionID:      id.NewID32(),
				LoanApplicationID:  a.ID,
				EquipmentID:        e.ID,
				Status:             loantx.StatusIssued,
				IssuingOfficerID:   actor.UserID,
				ReceivingOfficerID: receiving,
				IssueTimestamp:     now,
				Accessories:        string(accessories),
			}
			if err := r.LoanTransactions.Create(ctx, tx); err != nil {
				return err
			}
			issued.TransactionIDs = append(issued.TransactionIDs, tx.TransactionID)
			issued.IssuedTagIDs = append(issued.IssuedTagIDs, tagID)
		}
		if len(issued.IssuedTagIDs) == 0 {
			return ErrNoEquipmentIssued
		}

		open, err := r.LoanTransactions.ListOpenByApplication(ctx, a.ID)
		if err != nil {
			return err
		}
		next := application.LoanStatusIssued
		if len(open) < a.RequestedUnits {
			next = application.LoanStatusPartiallyIssued
		}
		if !a.Status.CanTransitionTo(next) && a.Status != next {
			return application.ErrInvalidTransition
		}
		a.Status = next
		a.StatusUpdatedAt = now
		if err := r.LoanApps.Save(ctx, a); err != nil {
			return err
		}
		issued.Application = toDTO(a)
		res = issued

		detail := fmt.Sprintf("Issued equipment: %v", issued.IssuedTagIDs)
		u.notifyApplicant(ctx, r, a, notification.EventIssuance, detail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ProcessReturn closes one loan transaction and flips its equipment back.
// The application leaves issued/overdue only once every transaction is
// closed.
func (u *Usecase) ProcessReturn(ctx context.Context, actor *user.User, applicationID string, in ReturnInput) (*DTO, error) {
	txStatus, eqStatus, err := mapReturnOutcome(in.Outcome)
	if err != nil {
		return nil, err
	}
	var dto *DTO
	err = u.uow.WithinLoanApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.LoanApplication) error {
		if err := u.gate.Can(actor, authz.ActionProcessReturn, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		tx, err := r.LoanTransactions.GetByTransactionID(ctx, in.TransactionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loantx.ErrNotFound
			}
			return err
		}
		if tx.LoanApplicationID != a.ID {
			return loantx.ErrNotFound
		}
		now := time.Now().UTC()
		if err := tx.Close(txStatus, actor.UserID, in.Notes, now); err != nil {
			return err
		}
		if err := r.LoanTransactions.Save(ctx, tx); err != nil {
			return err
		}
		flipped, err := r.Equipment.UpdateStatusIf(ctx, tx.EquipmentID, eqStatus, equipment.StatusOnLoan)
		if err != nil {
			return err
		}
		if !flipped {
			u.log.Warn("equipment was not on_loan at return time", "equipment_id", tx.EquipmentID)
		}

		open, err := r.LoanTransactions.ListOpenByApplication(ctx, a.ID)
		if err != nil {
			return err
		}
		if len(open) == 0 {
			if !a.Status.CanTransitionTo(application.LoanStatusReturned) {
				return application.ErrInvalidTransition
			}
			a.Status = application.LoanStatusReturned
			a.StatusUpdatedAt = now
			if err := r.LoanApps.Save(ctx, a); err != nil {
				return err
			}
		}
		dto = toDTO(a)
		u.notifyApplicant(ctx, r, a, notification.EventReturn, in.Notes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkOverdue flips issued applications past their end date to overdue and
// sends reminders. Called by the scheduler; safe to run repeatedly.
func (u *Usecase) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	marked := 0
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		apps, err := r.LoanApps.ListIssuedPastDue(ctx, now)
		if err != nil {
			return err
		}
		for _, a := range apps {
			flipped, err := r.LoanApps.UpdateStatusIf(ctx, a.ID, application.LoanStatusOverdue,
				application.LoanStatusIssued, application.LoanStatusPartiallyIssued)
			if err != nil {
				return err
			}
			if !flipped {
				continue
			}
			open, err := r.LoanTransactions.ListOpenByApplication(ctx, a.ID)
			if err != nil {
				return err
			}
			for _, tx := range open {
				if tx.Status == loantx.StatusIssued {
					tx.Status = loantx.StatusOverdue
					if err := r.LoanTransactions.Save(ctx, tx); err != nil {
						return err
					}
				}
			}
			marked++
			due := a.LoanEndDate
			name, email := applicantContact(ctx, r, a.ApplicantID)
			u.notifier.Notify(ctx, notification.Event{
				Type:           notification.EventOverdueReminder,
				ApplicationID:  a.ApplicationID,
				ApplicantName:  name,
				RecipientEmail: email,
				DueDate:        &due,
			})
		}
		return nil
	})
	if err != nil {
		return marked, err
	}
	return marked, nil
}

func mapReturnOutcome(o ReturnOutcome) (loantx.Status, equipment.Status, error) {
	switch o {
	case OutcomeReturned, "":
		return loantx.StatusReturned, equipment.StatusAvailable, nil
	case OutcomeLost:
		return loantx.StatusLost, equipment.StatusLost, nil
	case OutcomeDamaged:
		return loantx.StatusDamaged, equipment.StatusDamaged, nil
	default:
		return "", "", fmt.Errorf("unknown return outcome %q", o)
	}
}

func (u *Usecase) notifyApplicant(ctx context.Context, r uow.Repos, a *application.LoanApplication, t notification.EventType, detail string) {
	name, email := applicantContact(ctx, r, a.ApplicantID)
	u.notifier.Notify(ctx, notification.Event{
		Type:           t,
		ApplicationID:  a.ApplicationID,
		ApplicantName:  name,
		RecipientEmail: email,
		Detail:         detail,
	})
}

func getLoan(ctx context.Context, r uow.Repos, applicationID string) (*application.LoanApplication, error) {
	a, err := r.LoanApps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func openApproval(ctx context.Context, r uow.Repos, approvableID uint64) error {
	_, err := r.Approvals.GetPending(ctx, domainApproval.KindLoan, approvableID, domainApproval.StageSupport)
	switch {
	case err == nil:
		return domainApproval.ErrAlreadyPending
	case !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domainApproval.ErrNotFound):
		return err
	}
	return r.Approvals.Create(ctx, &domainApproval.Approval{
		ApprovalID:     id.NewID32(),
		ApprovableKind: domainApproval.KindLoan,
		ApprovableID:   approvableID,
		Stage:          domainApproval.StageSupport,
		Status:         domainApproval.StatusPending,
	})
}

func decideApproval(ctx context.Context, r uow.Repos, approvableID uint64, officerID string, approved bool, comments string) error {
	pending, err := r.Approvals.GetPending(ctx, domainApproval.KindLoan, approvableID, domainApproval.StageSupport)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainApproval.ErrNotFound
		}
		return err
	}
	if err := pending.Decide(officerID, approved, comments, time.Now().UTC()); err != nil {
		return err
	}
	return r.Approvals.Save(ctx, pending)
}

func applicantContact(ctx context.Context, r uow.Repos, applicantID string) (name, email string) {
	applicant, err := r.Users.GetByUserID(ctx, applicantID)
	if err != nil {
		return "", ""
	}
	return applicant.Name, applicant.Email
}
