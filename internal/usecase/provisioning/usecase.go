package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/notification"

	"gorm.io/gorm"
)

// ProvisionOutcome is what the external directory collaborator reports back.
type ProvisionOutcome struct {
	Success        bool
	AssignedEmail  string
	AssignedUserID string
}

// Provisioner creates the real mailbox/user-id in the external directory.
// The usecase treats it as opaque, slow and potentially failing.
type Provisioner interface {
	ProvisionAccount(ctx context.Context, app *application.EmailApplication) (ProvisionOutcome, error)
}

type Usecase struct {
	apps        application.EmailRepository
	users       user.Repository
	provisioner Provisioner
	notifier    notification.Notifier
	log         *slog.Logger
}

func NewUsecase(apps application.EmailRepository, users user.Repository, p Provisioner, n notification.Notifier, log *slog.Logger) *Usecase {
	return &Usecase{apps: apps, users: users, provisioner: p, notifier: n, log: log}
}

var provisionableStatuses = []string{string(application.EmailStatusPendingAdmin)}

// Provision runs the provisioning transition for one application. Guard
// order is fixed: not-found, terminal no-op, in-progress no-op, assignment
// completeness, precondition conflict. A request that is both already
// processing and missing its assignment must be reported as already
// processing. The pending_admin -> processing step is a single conditional
// update so concurrent calls cannot both claim the row.
func (u *Usecase) Provision(ctx context.Context, applicationID uint64) *Result {
	app, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, application.ErrNotFound) {
			return &Result{
				Code:    CodeApplicationNotFound,
				Message: fmt.Sprintf("email application %d not found", applicationID),
			}
		}
		return u.unexpected(ctx, nil, err)
	}

	if r := u.checkNoOp(app); r != nil {
		return r
	}

	if app.Status == application.EmailStatusPendingAdmin && !app.HasAssignment() {
		if _, err := u.apps.UpdateStatusIf(ctx, app.ID,
			application.EmailStatusAssignmentMissing, application.EmailStatusPendingAdmin); err != nil {
			return u.unexpected(ctx, app, err)
		}
		u.log.Warn("provisioning blocked, assignment missing", "application_id", app.ApplicationID)
		return &Result{
			Code:              CodeAssignmentMissing,
			Message:           "no final assigned email or user id is set on the application",
			ApplicationStatus: application.EmailStatusAssignmentMissing,
		}
	}

	if app.Status != application.EmailStatusPendingAdmin {
		return conflict(app.Status)
	}

	// Atomic claim: exactly one caller wins the pending_admin -> processing
	// write; everyone else re-reads and reports the observed state.
	claimed, err := u.apps.ClaimForProvisioning(ctx, app.ID)
	if err != nil {
		return u.unexpected(ctx, app, err)
	}
	if !claimed {
		fresh, err := u.apps.GetByID(ctx, app.ID)
		if err != nil {
			return u.unexpected(ctx, app, err)
		}
		if r := u.checkNoOp(fresh); r != nil {
			return r
		}
		return conflict(fresh.Status)
	}
	app.Status = application.EmailStatusProcessing

	outcome, perr := u.provisioner.ProvisionAccount(ctx, app)

	// The collaborator may have mutated the row; always re-read before
	// folding the outcome back.
	fresh, err := u.apps.GetByID(ctx, app.ID)
	if err != nil {
		fresh = app
	}

	if perr != nil || !outcome.Success {
		// Force provisioning_failed from whatever non-terminal status the
		// row is in now; the reported status must match what was written.
		if !fresh.Status.IsTerminalSuccess() && fresh.Status != application.EmailStatusProvisioningFailed {
			flipped, ferr := u.apps.UpdateStatusIf(ctx, fresh.ID,
				application.EmailStatusProvisioningFailed, fresh.Status)
			if ferr != nil {
				u.log.Error("failed to record provisioning failure", "application_id", fresh.ApplicationID, "error", ferr)
			}
			if flipped {
				fresh.Status = application.EmailStatusProvisioningFailed
			}
		}
		detail := "provisioning service reported failure"
		code := CodeProvisioningServiceFailed
		if perr != nil {
			detail = perr.Error()
			code = CodeUnexpectedError
		}
		u.log.Error("provisioning failed", "application_id", fresh.ApplicationID, "error", detail)
		name, email := u.applicantContact(ctx, fresh.ApplicantID)
		u.notifier.Notify(ctx, notification.Event{
			Type:           notification.EventProvisioningFailure,
			ApplicationID:  fresh.ApplicationID,
			ApplicantName:  name,
			RecipientEmail: email,
			Detail:         detail,
		})
		return &Result{
			Code:              code,
			Message:           "provisioning did not complete",
			ApplicationStatus: fresh.Status,
			ErrorDetail:       detail,
		}
	}

	if outcome.AssignedEmail != "" {
		fresh.FinalAssignedEmail = outcome.AssignedEmail
	}
	if outcome.AssignedUserID != "" {
		fresh.FinalAssignedUserID = outcome.AssignedUserID
	}
	if fresh.Status == application.EmailStatusProcessing {
		fresh.Status = application.EmailStatusCompleted
	}
	if err := u.apps.Save(ctx, fresh); err != nil {
		return u.unexpected(ctx, fresh, err)
	}

	u.log.Info("provisioning completed", "application_id", fresh.ApplicationID, "assigned_email", fresh.FinalAssignedEmail)
	name, _ := u.applicantContact(ctx, fresh.ApplicantID)
	u.notifier.Notify(ctx, notification.Event{
		Type:           notification.EventWelcome,
		ApplicationID:  fresh.ApplicationID,
		ApplicantName:  name,
		RecipientEmail: fresh.FinalAssignedEmail,
		Detail:         fresh.FinalAssignedEmail,
	})
	return &Result{
		Code:              CodeProvisioningSuccess,
		Message:           "provisioning succeeded",
		ApplicationStatus: fresh.Status,
		AssignedEmail:     fresh.FinalAssignedEmail,
		AssignedUserID:    fresh.FinalAssignedUserID,
	}
}

// checkNoOp returns the idempotent no-op result for terminal and in-flight
// applications, in that order.
func (u *Usecase) checkNoOp(app *application.EmailApplication) *Result {
	switch {
	case app.Status == application.EmailStatusCompleted || app.Status == application.EmailStatusProvisioningFailed:
		return &Result{
			Code:              CodeAlreadyInFinalState,
			Message:           "application is already in a final provisioning state",
			ApplicationStatus: app.Status,
		}
	case app.Status == application.EmailStatusProcessing:
		return &Result{
			Code:              CodeAlreadyInProgress,
			Message:           "provisioning is already in progress",
			ApplicationStatus: app.Status,
		}
	}
	return nil
}

func conflict(current application.EmailStatus) *Result {
	return &Result{
		Code:            CodeNotInProvisionableState,
		Message:         fmt.Sprintf("application status %q does not allow provisioning", current),
		CurrentStatus:   string(current),
		AllowedStatuses: provisionableStatuses,
	}
}

// applicantContact resolves the applicant for notification addressing. An
// unknown applicant yields empty values and the dispatcher's missing
// recipient policy takes over.
func (u *Usecase) applicantContact(ctx context.Context, applicantID string) (name, email string) {
	applicant, err := u.users.GetByUserID(ctx, applicantID)
	if err != nil {
		return "", ""
	}
	return applicant.Name, applicant.Email
}

func (u *Usecase) unexpected(ctx context.Context, app *application.EmailApplication, err error) *Result {
	r := &Result{
		Code:        CodeUnexpectedError,
		Message:     "an unexpected error occurred",
		ErrorDetail: err.Error(),
	}
	if app != nil {
		r.ApplicationStatus = app.Status
		u.log.Error("provisioning error", "application_id", app.ApplicationID, "error", err)
	} else {
		u.log.Error("provisioning error", "error", err)
	}
	return r
}
