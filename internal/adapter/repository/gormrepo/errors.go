package gormrepo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"microcredit-backoffice/internal/domain/loan"
)

// translate maps gorm errors onto the domain taxonomy. notFound is returned
// for a missing row.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", loan.ErrLoanHasDependents, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", loan.ErrConflict, err)
	}
	return err
}
