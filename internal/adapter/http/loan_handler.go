package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/usecase/loan"
)

type LoanHandler struct {
	uc  *loan.Usecase
	loc *time.Location
}

func NewLoanHandler(uc *loan.Usecase, loc *time.Location) *LoanHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &LoanHandler{uc: uc, loc: loc}
}

type issueLoanReq struct {
	ClientID  string          `json:"client_id" validate:"required,max=32"`
	Principal decimal.Decimal `json:"principal" validate:"dec2"`
	DueAt     string          `json:"due_at"    validate:"required"`
}

func (h *LoanHandler) IssueLoan(c echo.Context) error {
	var req issueLoanReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dueAt, err := parseDueAt(req.DueAt, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Issue(c.Request().Context(), loan.IssueInput{
		ClientID:  req.ClientID,
		Principal: req.Principal,
		DueAt:     dueAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), loanID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) Statement(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Statement(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Penalties(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Penalties(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListClientLoans(c echo.Context) error {
	clientID := strings.TrimSpace(c.Param("client_id"))
	if clientID == "" {
		return badRequest(c, "missing client_id path param")
	}
	out, err := h.uc.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"client_id": clientID, "loans": out})
}
