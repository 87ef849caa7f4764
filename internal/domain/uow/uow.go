package uow

import (
	"context"

	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
)

// Repos are bound to one database transaction.
type Repos struct {
	Loans     loan.Repository
	Payments  payment.Repository
	Penalties penalty.Repository
}

// UnitOfWork groups the loan, payment and penalty writes of one ledger
// mutation into a single commit.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
