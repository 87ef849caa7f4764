package penaltymock

import (
	"context"

	domain "microcredit-backoffice/internal/domain/penalty"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies penalty.Repository.
type Repo struct {
	CreateIfAbsentFn func(ctx context.Context, p *domain.Penalty) (bool, error)
	ExistsForDayFn   func(ctx context.Context, loanNumericID uint64, kind domain.Kind, day string) (bool, error)
	ListByLoanFn     func(ctx context.Context, loanNumericID uint64) ([]domain.Penalty, error)
	ListByLoanIDsFn  func(ctx context.Context, loanNumericIDs []uint64) ([]domain.Penalty, error)
	CountByLoanFn    func(ctx context.Context, loanNumericID uint64) (int64, error)
	SaveFn           func(ctx context.Context, p *domain.Penalty) error
}

func (m *Repo) CreateIfAbsent(ctx context.Context, p *domain.Penalty) (bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, p)
	}
	return true, nil
}

func (m *Repo) ExistsForDay(ctx context.Context, loanNumericID uint64, kind domain.Kind, day string) (bool, error) {
	if m.ExistsForDayFn != nil {
		return m.ExistsForDayFn(ctx, loanNumericID, kind, day)
	}
	return false, nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Penalty, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]domain.Penalty, error) {
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

func (m *Repo) Save(ctx context.Context, p *domain.Penalty) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
