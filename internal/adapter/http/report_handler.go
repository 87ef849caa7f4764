package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microcredit-backoffice/internal/usecase/accrual"
	"microcredit-backoffice/internal/usecase/risk"
)

type ReportHandler struct{ risk *risk.Service }

func NewReportHandler(s *risk.Service) *ReportHandler { return &ReportHandler{risk: s} }

func (h *ReportHandler) Risk(c echo.Context) error {
	r, err := h.risk.Report(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// JobsHandler triggers the daily batch passes on demand.
type JobsHandler struct {
	accrual  *accrual.Engine
	reminder *accrual.Reminder
}

func NewJobsHandler(a *accrual.Engine, r *accrual.Reminder) *JobsHandler {
	return &JobsHandler{accrual: a, reminder: r}
}

func (h *JobsHandler) RunAccrual(c echo.Context) error {
	rep, err := h.accrual.Run(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *JobsHandler) RunReminders(c echo.Context) error {
	rep, err := h.reminder.Run(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
