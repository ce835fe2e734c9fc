package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "motac-hrms/internal/domain/application"
	domainApproval "motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/uow"
	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/testutil/appmock"
	"motac-hrms/internal/testutil/approvalmock"
	"motac-hrms/internal/testutil/notifymock"
	"motac-hrms/internal/testutil/uowmock"
	"motac-hrms/internal/testutil/usermock"
	"motac-hrms/internal/usecase/authz"
	"motac-hrms/internal/usecase/emailapp"

	"github.com/labstack/echo/v4"
)

type emailHandlerFixture struct {
	app     *domain.EmailApplication
	pending []*domainApproval.Approval
	users   map[string]*user.User
	handler *EmailAppHandler
}

func newEmailHandlerFixture(t *testing.T) *emailHandlerFixture {
	t.Helper()
	f := &emailHandlerFixture{
		users: map[string]*user.User{},
	}
	f.app = &domain.EmailApplication{
		ID:            7,
		ApplicationID: strings.Repeat("e", 32),
		ApplicantID:   strings.Repeat("1", 32),
		Purpose:       "official mailbox",
		Status:        domain.EmailStatusDraft,
		CreatedAt:     time.Now().UTC(),
	}
	f.users[strings.Repeat("1", 32)] = &user.User{
		ID: 1, UserID: strings.Repeat("1", 32), Name: "Aminah", Email: "aminah@motac.gov.my", GradeLevel: 41,
	}
	f.users[strings.Repeat("2", 32)] = &user.User{
		ID: 2, UserID: strings.Repeat("2", 32), Name: "Farid", Email: "farid@motac.gov.my",
		GradeLevel: 44, Roles: "approver",
	}

	emailRepo := &appmock.EmailRepo{
		CreateFn: func(ctx context.Context, a *domain.EmailApplication) error {
			cp := *a
			f.app = &cp
			return nil
		},
		GetByApplicationIDFn: func(ctx context.Context, applicationID string) (*domain.EmailApplication, error) {
			if f.app == nil || f.app.ApplicationID != applicationID {
				return nil, domain.ErrNotFound
			}
			cp := *f.app
			return &cp, nil
		},
		SaveFn: func(ctx context.Context, a *domain.EmailApplication) error {
			cp := *a
			f.app = &cp
			return nil
		},
	}
	approvals := &approvalmock.Repo{
		CreateFn: func(ctx context.Context, a *domainApproval.Approval) error {
			f.pending = append(f.pending, a)
			return nil
		},
		GetPendingFn: func(ctx context.Context, kind domainApproval.ApprovableKind, approvableID uint64, stage domainApproval.Stage) (*domainApproval.Approval, error) {
			for _, a := range f.pending {
				if a.ApprovableKind == kind && a.ApprovableID == approvableID && a.Stage == stage && a.Status == domainApproval.StatusPending {
					return a, nil
				}
			}
			return nil, domainApproval.ErrNotFound
		},
	}
	userRepo := &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*user.User, error) {
			u, ok := f.users[userID]
			if !ok {
				return nil, user.ErrNotFound
			}
			return u, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{
		Users:     userRepo,
		EmailApps: emailRepo,
		Approvals: approvals,
	})
	uc := emailapp.NewUsecase(tx, authz.NewGate(41), &notifymock.Notifier{}, "approvers@motac.gov.my", discardLogger())
	f.handler = NewEmailAppHandler(uc, userRepo)
	return f
}

func (f *emailHandlerFixture) do(t *testing.T, method, path, staffID string, body any,
	handle echo.HandlerFunc, paramValue string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if staffID != "" {
		req.Header.Set(actorHeader, staffID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramValue != "" {
		c.SetParamNames("application_id")
		c.SetParamValues(paramValue)
	}
	if err := handle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeDTO(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return out
}

func TestEmailCreate_Returns201(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications", strings.Repeat("1", 32),
		map[string]any{"purpose": "official mailbox"}, f.handler.Create, "")
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	out := decodeDTO(t, rec)
	if out["status"] != string(domain.EmailStatusDraft) {
		t.Fatalf("status = %v", out["status"])
	}
	if out["applicant_id"] != strings.Repeat("1", 32) {
		t.Fatalf("applicant_id = %v", out["applicant_id"])
	}
}

func TestEmailCreate_MissingHeader400(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications", "",
		map[string]any{"purpose": "official mailbox"}, f.handler.Create, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestEmailCreate_MalformedHeader400(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications", "not-a-hex-id",
		map[string]any{"purpose": "official mailbox"}, f.handler.Create, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestEmailCreate_UnknownStaff401(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications", strings.Repeat("f", 32),
		map[string]any{"purpose": "official mailbox"}, f.handler.Create, "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestEmailCreate_MissingPurpose422(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications", strings.Repeat("1", 32),
		map[string]any{}, f.handler.Create, "")
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestEmailSubmit_Returns200(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/submit",
		strings.Repeat("1", 32), nil, f.handler.Submit, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if out := decodeDTO(t, rec); out["status"] != string(domain.EmailStatusPendingSupport) {
		t.Fatalf("status = %v", out["status"])
	}
}

func TestEmailSubmit_NonOwner403(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/submit",
		strings.Repeat("2", 32), nil, f.handler.Submit, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("want 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestEmailGet_Unknown404(t *testing.T) {
	f := newEmailHandlerFixture(t)
	missing := strings.Repeat("d", 32)

	rec := f.do(t, stdhttp.MethodGet, "/api/email-applications/"+missing,
		strings.Repeat("1", 32), nil, f.handler.Get, missing)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestEmailApprove_FromDraft403(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/approve",
		strings.Repeat("2", 32), map[string]any{"comments": "ok"}, f.handler.Approve, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("want 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestEmailSubmit_ApprovalAlreadyOpen409(t *testing.T) {
	f := newEmailHandlerFixture(t)
	f.pending = append(f.pending, &domainApproval.Approval{
		ApprovalID:     strings.Repeat("c", 32),
		ApprovableKind: domainApproval.KindEmail,
		ApprovableID:   f.app.ID,
		Stage:          domainApproval.StageSupport,
		Status:         domainApproval.StatusPending,
	})

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/submit",
		strings.Repeat("1", 32), nil, f.handler.Submit, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestEmailReject_MissingReason422(t *testing.T) {
	f := newEmailHandlerFixture(t)
	f.app.Status = domain.EmailStatusPendingSupport

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/reject",
		strings.Repeat("2", 32), map[string]any{}, f.handler.Reject, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", rec.Code)
	}
}

func TestEmailCancel_Returns200(t *testing.T) {
	f := newEmailHandlerFixture(t)

	rec := f.do(t, stdhttp.MethodPost, "/api/email-applications/"+f.app.ApplicationID+"/cancel",
		strings.Repeat("1", 32), nil, f.handler.Cancel, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.app.Status != domain.EmailStatusCancelled {
		t.Fatalf("status = %s", f.app.Status)
	}
}

func TestEmailUpdateAssignment_Returns200(t *testing.T) {
	f := newEmailHandlerFixture(t)
	f.app.Status = domain.EmailStatusAssignmentMissing
	admin := strings.Repeat("3", 32)
	f.users[admin] = &user.User{ID: 3, UserID: admin, Name: "Zul", Email: "zul@motac.gov.my", Roles: "it_admin"}

	rec := f.do(t, stdhttp.MethodPatch, "/api/email-applications/"+f.app.ApplicationID+"/assignment",
		admin, map[string]any{
			"final_assigned_email":   "aminah@motac.gov.my",
			"final_assigned_user_id": strings.Repeat("a", 32),
		}, f.handler.UpdateAssignment, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.app.Status != domain.EmailStatusPendingAdmin {
		t.Fatalf("status = %s, want recovery to pending_admin", f.app.Status)
	}
	if f.app.FinalAssignedEmail != "aminah@motac.gov.my" {
		t.Fatalf("final_assigned_email = %s", f.app.FinalAssignedEmail)
	}
}

func TestEmailUpdateAssignment_BadEmail422(t *testing.T) {
	f := newEmailHandlerFixture(t)
	admin := strings.Repeat("3", 32)
	f.users[admin] = &user.User{ID: 3, UserID: admin, Roles: "it_admin"}

	rec := f.do(t, stdhttp.MethodPatch, "/api/email-applications/"+f.app.ApplicationID+"/assignment",
		admin, map[string]any{"final_assigned_email": "not-an-email"}, f.handler.UpdateAssignment, f.app.ApplicationID)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", rec.Code)
	}
}
