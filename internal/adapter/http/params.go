package http

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"microcredit-backoffice/internal/domain/loan"
)

const dateLayout = "2006-01-02"

type loanPath struct {
	LoanID string `param:"loan_id" json:"loan_id" validate:"required,hex32"`
}

// bindLoanID reads and validates the :loan_id path segment.
func bindLoanID(c echo.Context) (string, error) {
	var p loanPath
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return "", err
	}
	p.LoanID = strings.TrimSpace(p.LoanID)
	return p.LoanID, c.Validate(&p)
}

// parseDueAt accepts RFC3339 or a bare date. A bare date means the end of
// that day in loc, so the loan is not overdue at any point on its due date.
func parseDueAt(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, loan.Invalid("due_at", "must be YYYY-MM-DD or RFC3339 with a zone")
	}
	return d.AddDate(0, 0, 1).Add(-time.Second).UTC(), nil
}
