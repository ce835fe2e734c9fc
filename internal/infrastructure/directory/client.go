package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/usecase/provisioning"
	"motac-hrms/pkg/id"
)

// Client creates mailbox accounts in the external directory service. When no
// base URL is configured it runs in self-contained mode and confirms the
// assignment already recorded on the application, so a dev or staging
// deployment works without the directory being reachable.
type Client struct {
	baseURL       string
	defaultDomain string
	httpc         *http.Client
	log           *slog.Logger
}

func NewClient(baseURL, defaultDomain string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		defaultDomain: defaultDomain,
		httpc:         &http.Client{Timeout: timeout},
		log:           log,
	}
}

var _ provisioning.Provisioner = (*Client)(nil)

type createAccountReq struct {
	ApplicationID  string `json:"application_id"`
	ApplicantID    string `json:"applicant_id"`
	RequestedEmail string `json:"requested_email"`
	RequestedUser  string `json:"requested_user_id,omitempty"`
}

type createAccountResp struct {
	Success        bool   `json:"success"`
	AssignedEmail  string `json:"assigned_email"`
	AssignedUserID string `json:"assigned_user_id"`
	Error          string `json:"error,omitempty"`
}

func (c *Client) ProvisionAccount(ctx context.Context, app *application.EmailApplication) (provisioning.ProvisionOutcome, error) {
	if c.baseURL == "" {
		return c.selfContained(app), nil
	}

	body, err := json.Marshal(createAccountReq{
		ApplicationID:  app.ApplicationID,
		ApplicantID:    app.ApplicantID,
		RequestedEmail: c.targetEmail(app),
		RequestedUser:  app.FinalAssignedUserID,
	})
	if err != nil {
		return provisioning.ProvisionOutcome{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/accounts", bytes.NewReader(body))
	if err != nil {
		return provisioning.ProvisionOutcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return provisioning.ProvisionOutcome{}, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	var out createAccountResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return provisioning.ProvisionOutcome{}, fmt.Errorf("directory response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return provisioning.ProvisionOutcome{}, fmt.Errorf("directory returned %d: %s", resp.StatusCode, out.Error)
	}
	if resp.StatusCode >= 300 || !out.Success {
		c.log.Warn("directory refused account creation",
			"application_id", app.ApplicationID, "status", resp.StatusCode, "error", out.Error)
		return provisioning.ProvisionOutcome{Success: false}, nil
	}
	return provisioning.ProvisionOutcome{
		Success:        true,
		AssignedEmail:  out.AssignedEmail,
		AssignedUserID: out.AssignedUserID,
	}, nil
}

func (c *Client) selfContained(app *application.EmailApplication) provisioning.ProvisionOutcome {
	out := provisioning.ProvisionOutcome{
		Success:        true,
		AssignedEmail:  c.targetEmail(app),
		AssignedUserID: app.FinalAssignedUserID,
	}
	if out.AssignedUserID == "" {
		out.AssignedUserID = id.NewID32()
	}
	c.log.Info("directory not configured, self-contained assignment",
		"application_id", app.ApplicationID, "assigned_email", out.AssignedEmail)
	return out
}

// targetEmail prefers the admin-assigned address, then the applicant's
// proposal, then a local part derived from the applicant id on the default
// domain.
func (c *Client) targetEmail(app *application.EmailApplication) string {
	if app.FinalAssignedEmail != "" {
		return app.FinalAssignedEmail
	}
	if app.ProposedEmail != "" {
		return app.ProposedEmail
	}
	return fmt.Sprintf("%s@%s", app.ApplicantID, c.defaultDomain)
}
