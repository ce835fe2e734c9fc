package http

import (
	"net/http"

	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/emailapp"

	"github.com/labstack/echo/v4"
)

type EmailAppHandler struct {
	uc    *emailapp.Usecase
	users user.Repository
}

func NewEmailAppHandler(uc *emailapp.Usecase, users user.Repository) *EmailAppHandler {
	return &EmailAppHandler{uc: uc, users: users}
}

type createEmailAppReq struct {
	Purpose       string `json:"purpose"        validate:"required"`
	ProposedEmail string `json:"proposed_email" validate:"omitempty,email"`
}

type decisionReq struct {
	Comments string `json:"comments"`
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required"`
}

type assignmentReq struct {
	FinalAssignedEmail  string `json:"final_assigned_email"   validate:"omitempty,email"`
	FinalAssignedUserID string `json:"final_assigned_user_id" validate:"omitempty,hex32"`
}

func (h *EmailAppHandler) Create(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req createEmailAppReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, emailapp.CreateInput{
		Purpose:       req.Purpose,
		ProposedEmail: req.ProposedEmail,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *EmailAppHandler) Get(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("application_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EmailAppHandler) Submit(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), actor, c.Param("application_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EmailAppHandler) Approve(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), actor, c.Param("application_id"), req.Comments)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EmailAppHandler) Reject(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), actor, c.Param("application_id"), req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EmailAppHandler) Cancel(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	dto, err := h.uc.Cancel(c.Request().Context(), actor, c.Param("application_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EmailAppHandler) UpdateAssignment(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req assignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateAssignment(c.Request().Context(), actor, c.Param("application_id"), emailapp.AssignmentInput{
		FinalAssignedEmail:  req.FinalAssignedEmail,
		FinalAssignedUserID: req.FinalAssignedUserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
