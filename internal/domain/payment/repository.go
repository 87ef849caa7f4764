package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	// ListByLoan returns payments oldest first.
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Payment, error)
	ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]Payment, error)
	CountByLoan(ctx context.Context, loanNumericID uint64) (int64, error)
}
