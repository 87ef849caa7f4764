package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"microcredit-backoffice/pkg/clock"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	clock  clock.Clock
	checks map[string]Pinger
}

func NewHandler(c clock.Clock, checks map[string]Pinger) *Handler {
	if c == nil {
		c = clock.System{}
	}
	return &Handler{clock: c, checks: checks}
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	body := map[string]any{
		"status": status,
		"time":   h.clock.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(deps) > 0 {
		body["deps"] = deps
	}
	return c.JSON(code, body)
}
