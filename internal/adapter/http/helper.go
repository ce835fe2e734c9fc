package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/loantx"
	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/authz"
	"motac-hrms/internal/usecase/loanapp"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// actorHeader identifies the staff member acting on lifecycle routes. The
// upstream SSO gateway is expected to set it.
const actorHeader = "X-Staff-Id"

// resolveActor loads the acting user from the staff header. A missing or
// malformed header is a 400; an unknown staff id is a 401.
func resolveActor(c echo.Context, users user.Repository) (*user.User, error) {
	staffID := strings.TrimSpace(c.Request().Header.Get(actorHeader))
	if staffID == "" {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + actorHeader})
	}
	if !reHex32.MatchString(staffID) {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + actorHeader})
	}
	u, err := users.GetByUserID(c.Request().Context(), staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return nil, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown staff id"})
		}
		return nil, c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to resolve actor"})
	}
	return u, nil
}

// writeDomainError maps usecase errors onto HTTP codes.
func writeDomainError(c echo.Context, err error) error {
	var denied *authz.DeniedError
	switch {
	case errors.As(err, &denied):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: denied.Reason})
	case errors.Is(err, application.ErrNotFound),
		errors.Is(err, loantx.ErrNotFound),
		errors.Is(err, equipment.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, approval.ErrAlreadyPending),
		errors.Is(err, approval.ErrAlreadyDecided),
		errors.Is(err, loantx.ErrAlreadyClosed),
		errors.Is(err, loanapp.ErrNoEquipmentIssued):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "timed out"})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
