package penalty

import "context"

type Repository interface {
	// CreateIfAbsent inserts p unless a row for (loan, kind, day) exists.
	// created is false when the row was already there.
	CreateIfAbsent(ctx context.Context, p *Penalty) (created bool, err error)
	ExistsForDay(ctx context.Context, loanNumericID uint64, kind Kind, day string) (bool, error)
	// ListByLoan returns penalties oldest day first.
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Penalty, error)
	ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]Penalty, error)
	CountByLoan(ctx context.Context, loanNumericID uint64) (int64, error)
	Save(ctx context.Context, p *Penalty) error
}
