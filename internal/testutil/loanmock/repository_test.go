package loanmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "microcredit-backoffice/internal/domain/loan"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByLoanID(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByLoanID default: want not found, got %v", err)
	}
	if _, err := m.GetByLoanIDForUpdate(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByLoanIDForUpdate default: want not found, got %v", err)
	}
	if err := m.Create(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.Delete(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Delete default: %v", err)
	}
	if got, err := m.ListOverdue(ctx, time.Now()); err != nil || got != nil {
		t.Fatalf("ListOverdue default: %v %v", got, err)
	}
}

func TestRepo_DelegatesToFuncs(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	var gotStatuses []domain.Status

	m := &Repo{
		SaveFn: func(context.Context, *domain.Loan) error { return wantErr },
		ListByStatusFn: func(_ context.Context, s ...domain.Status) ([]domain.Loan, error) {
			gotStatuses = s
			return []domain.Loan{{LoanID: "a"}}, nil
		},
	}

	if err := m.Save(ctx, &domain.Loan{}); !errors.Is(err, wantErr) {
		t.Fatalf("Save: want %v, got %v", wantErr, err)
	}
	got, err := m.ListByStatus(ctx, domain.StatusActive, domain.StatusDelinquent)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListByStatus: %v %v", got, err)
	}
	if len(gotStatuses) != 2 || gotStatuses[1] != domain.StatusDelinquent {
		t.Fatalf("statuses not forwarded: %v", gotStatuses)
	}
}
