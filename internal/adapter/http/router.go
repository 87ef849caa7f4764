package http

import "github.com/labstack/echo/v4"

type Routes struct {
	Health   *Handler
	Loans    *LoanHandler
	Payments *PaymentHandler
	Reports  *ReportHandler
	Jobs     *JobsHandler
	// Idempotency guards the money-moving POSTs. Nil disables it.
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	var idem []echo.MiddlewareFunc
	if r.Idempotency != nil {
		idem = append(idem, r.Idempotency)
	}

	e.GET("/health", r.Health.Health)

	e.POST("/loans", r.Loans.IssueLoan, idem...)
	e.GET("/loans/:loan_id", r.Loans.GetLoan)
	e.DELETE("/loans/:loan_id", r.Loans.DeleteLoan)
	e.GET("/loans/:loan_id/statement", r.Loans.Statement)
	e.GET("/loans/:loan_id/penalties", r.Loans.Penalties)
	e.GET("/clients/:client_id/loans", r.Loans.ListClientLoans)

	e.POST("/loans/:loan_id/payments", r.Payments.ApplyPayment, idem...)
	e.GET("/loans/:loan_id/payments", r.Payments.ListPayments)

	e.GET("/reports/risk", r.Reports.Risk)

	jobs := e.Group("/jobs")
	jobs.POST("/accrual", r.Jobs.RunAccrual)
	jobs.POST("/reminders", r.Jobs.RunReminders)
}

// NewEcho returns an echo instance with the validator installed.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	return e
}
