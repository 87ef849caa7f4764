package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainPayment "microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/usecase/payment"
)

type PaymentHandler struct{ engine *payment.Engine }

func NewPaymentHandler(e *payment.Engine) *PaymentHandler { return &PaymentHandler{engine: e} }

// amount accepts a JSON number or a numeric string
type applyPaymentReq struct {
	Amount    decimal.Decimal `json:"amount"    validate:"dec2"`
	Method    string          `json:"method"    validate:"required,paymethod"`
	Reference *string         `json:"reference" validate:"omitempty,max=128"`
}

func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	var req applyPaymentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	receipt, err := h.engine.Apply(c.Request().Context(), payment.ApplyInput{
		LoanID:    loanID,
		Amount:    req.Amount,
		Method:    domainPayment.Method(req.Method),
		Reference: req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	loanID, err := bindLoanID(c)
	if err != nil {
		return invalid(c, err)
	}
	out, err := h.engine.ListByLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": loanID, "payments": out})
}
