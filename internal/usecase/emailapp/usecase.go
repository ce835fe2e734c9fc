package emailapp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"motac-hrms/internal/domain/application"
	domainApproval "motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/uow"
	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/authz"
	"motac-hrms/internal/usecase/notification"
	"motac-hrms/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow           uow.UnitOfWork
	gate          *authz.Gate
	notifier      notification.Notifier
	log           *slog.Logger
	approverEmail string // pool address notified on submission
}

func NewUsecase(tx uow.UnitOfWork, gate *authz.Gate, n notification.Notifier, approverEmail string, log *slog.Logger) *Usecase {
	return &Usecase{uow: tx, gate: gate, notifier: n, approverEmail: approverEmail, log: log}
}

func (u *Usecase) subject(a *application.EmailApplication) authz.Subject {
	return authz.Subject{Kind: domainApproval.KindEmail, OwnerID: a.ApplicantID, Status: string(a.Status)}
}

func (u *Usecase) Create(ctx context.Context, actor *user.User, in CreateInput) (*DTO, error) {
	d := u.gate.Can(actor, authz.ActionCreate, authz.Subject{Kind: domainApproval.KindEmail})
	if err := d.ErrIfDenied(); err != nil {
		return nil, err
	}

	a := &application.EmailApplication{
		ApplicationID:   id.NewID32(),
		ApplicantID:     actor.UserID,
		Purpose:         in.Purpose,
		ProposedEmail:   in.ProposedEmail,
		Status:          application.EmailStatusDraft,
		StatusUpdatedAt: time.Now().UTC(),
	}
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.EmailApps.Create(ctx, a); err != nil {
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
		a, err := getEmail(ctx, r, applicationID)
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

// Submit moves a draft into the support-approval stage and opens the pending
// approval record for it.
func (u *Usecase) Submit(ctx context.Context, actor *user.User, applicationID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getEmail(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionUpdate, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.EmailStatusPendingSupport) {
			return application.ErrInvalidTransition
		}
		if err := openApproval(ctx, r, domainApproval.KindEmail, a.ID, domainApproval.StageSupport); err != nil {
			return err
		}
		a.Status = application.EmailStatusPendingSupport
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.EmailApps.Save(ctx, a); err != nil {
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

// Approve records the support officer's decision and advances the
// application to the ICT admin stage.
func (u *Usecase) Approve(ctx context.Context, actor *user.User, applicationID, comments string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getEmail(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionApprove, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if err := decideApproval(ctx, r, domainApproval.KindEmail, a.ID, domainApproval.StageSupport, actor.UserID, true, comments); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.EmailStatusPendingAdmin) {
			return application.ErrInvalidTransition
		}
		// Open the admin-stage record so the ICT admin queue sees it.
		if err := openApproval(ctx, r, domainApproval.KindEmail, a.ID, domainApproval.StageAdmin); err != nil {
			return err
		}
		a.Status = application.EmailStatusPendingAdmin
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.EmailApps.Save(ctx, a); err != nil {
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
		a, err := getEmail(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionReject, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		stage := domainApproval.StageSupport
		if a.Status == application.EmailStatusPendingAdmin {
			stage = domainApproval.StageAdmin
		}
		if err := decideApproval(ctx, r, domainApproval.KindEmail, a.ID, stage, actor.UserID, false, reason); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.EmailStatusRejected) {
			return application.ErrInvalidTransition
		}
		now := time.Now().UTC()
		a.Status = application.EmailStatusRejected
		a.RejectionReason = reason
		a.StatusUpdatedAt = now
		a.DecidedAt = &now
		if err := r.EmailApps.Save(ctx, a); err != nil {
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
		a, err := getEmail(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionCancel, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(application.EmailStatusCancelled) {
			return application.ErrInvalidTransition
		}
		a.Status = application.EmailStatusCancelled
		a.StatusUpdatedAt = time.Now().UTC()
		if err := r.EmailApps.Save(ctx, a); err != nil {
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

// UpdateAssignment lets ICT staff set the provisioning target, recovering an
// assignment_missing application back to pending_admin.
func (u *Usecase) UpdateAssignment(ctx context.Context, actor *user.User, applicationID string, in AssignmentInput) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := getEmail(ctx, r, applicationID)
		if err != nil {
			return err
		}
		if err := u.gate.Can(actor, authz.ActionUpdateAssignment, u.subject(a)).ErrIfDenied(); err != nil {
			return err
		}
		a.FinalAssignedEmail = in.FinalAssignedEmail
		a.FinalAssignedUserID = in.FinalAssignedUserID
		if a.Status == application.EmailStatusAssignmentMissing && a.HasAssignment() {
			a.Status = application.EmailStatusPendingAdmin
			a.StatusUpdatedAt = time.Now().UTC()
		}
		if err := r.EmailApps.Save(ctx, a); err != nil {
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

func (u *Usecase) notifyApplicant(ctx context.Context, r uow.Repos, a *application.EmailApplication, t notification.EventType, detail string) {
	name, email := applicantContact(ctx, r, a.ApplicantID)
	u.notifier.Notify(ctx, notification.Event{
		Type:           t,
		ApplicationID:  a.ApplicationID,
		ApplicantName:  name,
		RecipientEmail: email,
		Detail:         detail,
	})
}

func getEmail(ctx context.Context, r uow.Repos, applicationID string) (*application.EmailApplication, error) {
	a, err := r.EmailApps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// openApproval creates the pending approval for a stage, refusing a second
// pending row for the same (application, stage).
func openApproval(ctx context.Context, r uow.Repos, kind domainApproval.ApprovableKind, approvableID uint64, stage domainApproval.Stage) error {
	_, err := r.Approvals.GetPending(ctx, kind, approvableID, stage)
	switch {
	case err == nil:
		return domainApproval.ErrAlreadyPending
	case !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domainApproval.ErrNotFound):
		return err
	}
	return r.Approvals.Create(ctx, &domainApproval.Approval{
		ApprovalID:     id.NewID32(),
		ApprovableKind: kind,
		ApprovableID:   approvableID,
		Stage:          stage,
		Status:         domainApproval.StatusPending,
	})
}

func decideApproval(ctx context.Context, r uow.Repos, kind domainApproval.ApprovableKind, approvableID uint64, stage domainApproval.Stage, officerID string, approved bool, comments string) error {
	pending, err := r.Approvals.GetPending(ctx, kind, approvableID, stage)
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
