package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"microcredit-backoffice/internal/domain/loan"
)

// writeError maps the domain error taxonomy onto status codes.
func writeError(c echo.Context, err error) error {
	var ve *loan.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Reason}},
		})
	case loan.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case loan.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case loan.IsConflict(err):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
