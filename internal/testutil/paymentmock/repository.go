package paymentmock

import (
	"context"

	domain "microcredit-backoffice/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies payment.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Payment) error
	ListByLoanFn    func(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error)
	ListByLoanIDsFn func(ctx context.Context, loanNumericIDs []uint64) ([]domain.Payment, error)
	CountByLoanFn   func(ctx context.Context, loanNumericID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDsFn != nil {
		return m.ListByLoanIDsFn(ctx, loanNumericIDs)
	}
	return nil, nil
}

func (m *Repo) CountByLoan(ctx context.Context, loanNumericID uint64) (int64, error) {
	if m.CountByLoanFn != nil {
		return m.CountByLoanFn(ctx, loanNumericID)
	}
	return 0, nil
}
