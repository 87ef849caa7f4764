package loan

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrLoanNotFound      = fmt.Errorf("loan %w", ErrNotFound)
	ErrPenaltyNotFound   = fmt.Errorf("penalty %w", ErrNotFound)
	ErrLoanAlreadyPaid   = fmt.Errorf("%w: loan is already paid", ErrConflict)
	ErrLoanHasDependents = fmt.Errorf("%w: loan has payments or penalties", ErrConflict)
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
