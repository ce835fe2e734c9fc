package http

import (
	"net/http"

	"motac-hrms/internal/usecase/provisioning"

	"github.com/labstack/echo/v4"
)

type ProvisioningHandler struct{ uc *provisioning.Usecase }

func NewProvisioningHandler(uc *provisioning.Usecase) *ProvisioningHandler {
	return &ProvisioningHandler{uc: uc}
}

type provisionReq struct {
	ApplicationID uint64 `json:"application_id" validate:"required,gte=1"`
}

type provisionResp struct {
	Code              provisioning.Code `json:"code"`
	Message           string            `json:"message"`
	ApplicationStatus string            `json:"application_status,omitempty"`
	AssignedEmail     string            `json:"assigned_email,omitempty"`
	AssignedUserID    string            `json:"assigned_user_id,omitempty"`
	CurrentStatus     string            `json:"current_status,omitempty"`
	AllowedStatuses   []string          `json:"allowed_statuses,omitempty"`
	ErrorDetail       string            `json:"error_detail,omitempty"`
}

// statusFor maps each outcome code onto an HTTP status. The no-op codes are
// 200 on purpose: a duplicate call is a successful observation, not a fault.
func statusFor(code provisioning.Code) int {
	switch code {
	case provisioning.CodeProvisioningSuccess,
		provisioning.CodeAlreadyInFinalState,
		provisioning.CodeAlreadyInProgress:
		return http.StatusOK
	case provisioning.CodeAssignmentMissing:
		return http.StatusBadRequest
	case provisioning.CodeApplicationNotFound:
		return http.StatusNotFound
	case provisioning.CodeNotInProvisionableState:
		return http.StatusConflict
	default: // provisioning_service_failed, unexpected_error
		return http.StatusInternalServerError
	}
}

func (h *ProvisioningHandler) Provision(c echo.Context) error {
	var req provisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res := h.uc.Provision(c.Request().Context(), req.ApplicationID)
	return c.JSON(statusFor(res.Code), provisionResp{
		Code:              res.Code,
		Message:           res.Message,
		ApplicationStatus: string(res.ApplicationStatus),
		AssignedEmail:     res.AssignedEmail,
		AssignedUserID:    res.AssignedUserID,
		CurrentStatus:     res.CurrentStatus,
		AllowedStatuses:   res.AllowedStatuses,
		ErrorDetail:       res.ErrorDetail,
	})
}
