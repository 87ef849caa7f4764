package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding transaction ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByClientID(ctx context.Context, clientID string) ([]Loan, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Loan, error)
	// ListOverdue returns Active or Delinquent loans whose due date is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]Loan, error)
	// ListDueAfter returns Active loans whose due date is after now.
	ListDueAfter(ctx context.Context, now time.Time) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
}
