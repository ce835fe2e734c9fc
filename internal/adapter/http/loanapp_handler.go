package http

import (
	"net/http"
	"time"

	"motac-hrms/internal/domain/user"
	"motac-hrms/internal/usecase/loanapp"

	"github.com/labstack/echo/v4"
)

type LoanAppHandler struct {
	uc    *loanapp.Usecase
	users user.Repository
}

func NewLoanAppHandler(uc *loanapp.Usecase, users user.Repository) *LoanAppHandler {
	return &LoanAppHandler{uc: uc, users: users}
}

type createLoanAppReq struct {
	Purpose        string `json:"purpose"         validate:"required"`
	LoanStartDate  string `json:"loan_start_date" validate:"required,datetime=2006-01-02"`
	LoanEndDate    string `json:"loan_end_date"   validate:"required,datetime=2006-01-02"`
	RequestedUnits int    `json:"requested_units" validate:"omitempty,gte=1"`
}

type issueReq struct {
	EquipmentTagIDs    []string `json:"equipment_tag_ids"    validate:"required,min=1"`
	Accessories        []string `json:"accessories"`
	ReceivingOfficerID string   `json:"receiving_officer_id" validate:"omitempty,hex32"`
}

type returnReq struct {
	TransactionID string `json:"transaction_id" validate:"required,hex32"`
	Outcome       string `json:"outcome"        validate:"omitempty,oneof=returned lost damaged"`
	Notes         string `json:"notes"`
}

func (h *LoanAppHandler) Create(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req createLoanAppReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse("2006-01-02", req.LoanStartDate)
	end, _ := time.Parse("2006-01-02", req.LoanEndDate)
	dto, err := h.uc.Create(c.Request().Context(), actor, loanapp.CreateInput{
		Purpose:        req.Purpose,
		LoanStartDate:  start,
		LoanEndDate:    end,
		RequestedUnits: req.RequestedUnits,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanAppHandler) Get(c echo.Context) error {
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

func (h *LoanAppHandler) Submit(c echo.Context) error {
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

func (h *LoanAppHandler) Approve(c echo.Context) error {
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

func (h *LoanAppHandler) Reject(c echo.Context) error {
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

func (h *LoanAppHandler) Cancel(c echo.Context) error {
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

func (h *LoanAppHandler) Issue(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req issueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Issue(c.Request().Context(), actor, c.Param("application_id"), loanapp.IssueInput{
		EquipmentTagIDs:    req.EquipmentTagIDs,
		Accessories:        req.Accessories,
		ReceivingOfficerID: req.ReceivingOfficerID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanAppHandler) ProcessReturn(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if actor == nil {
		return err
	}
	var req returnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ProcessReturn(c.Request().Context(), actor, c.Param("application_id"), loanapp.ReturnInput{
		TransactionID: req.TransactionID,
		Outcome:       loanapp.ReturnOutcome(req.Outcome),
		Notes:         req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
