package gormrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domain "microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/penalty"
	"microcredit-backoffice/pkg/id"
)

func makePenalty(loanID uint64, day string, elapsed int) *penalty.Penalty {
	return &penalty.Penalty{
		PenaltyID:   id.NewID32(),
		LoanID:      loanID,
		ClientID:    "c",
		Kind:        penalty.KindLate,
		Day:         day,
		ElapsedDays: elapsed,
		Amount:      decimal.NewFromInt(500),
		Status:      penalty.StatusPending,
		AppliedAt:   baseTime,
	}
}

func TestPenalty_CreateIfAbsentIsIdempotentPerDay(t *testing.T) {
	db := openTestDB(t)
	loans := NewLoanRepository(db)
	repo := NewPenaltyRepository(db)
	ctx := context.Background()
	l := mustCreateLoan(t, loans, makeLoan("c", baseTime, domain.StatusDelinquent))

	created, err := repo.CreateIfAbsent(ctx, makePenalty(l.ID, "2026-05-02", 1))
	if err != nil || !created {
		t.Fatalf("first insert: created=%v err=%v", created, err)
	}
	created, err = repo.CreateIfAbsent(ctx, makePenalty(l.ID, "2026-05-02", 1))
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatalf("same (loan, kind, day) must not insert twice")
	}

	exists, err := repo.ExistsForDay(ctx, l.ID, penalty.KindLate, "2026-05-02")
	if err != nil || !exists {
		t.Fatalf("ExistsForDay: %v %v", exists, err)
	}
	exists, _ = repo.ExistsForDay(ctx, l.ID, penalty.KindLate, "2026-05-03")
	if exists {
		t.Fatal("ExistsForDay: unexpected row for another day")
	}
	if n, _ := repo.CountByLoan(ctx, l.ID); n != 1 {
		t.Fatalf("CountByLoan=%d", n)
	}
}

func TestPenalty_ListOrderAndSave(t *testing.T) {
	db := openTestDB(t)
	loans := NewLoanRepository(db)
	repo := NewPenaltyRepository(db)
	ctx := context.Background()
	l := mustCreateLoan(t, loans, makeLoan("c", baseTime, domain.StatusDelinquent))
	other := mustCreateLoan(t, loans, makeLoan("d", baseTime, domain.StatusDelinquent))

	for _, p := range []*penalty.Penalty{
		makePenalty(l.ID, "2026-05-03", 2),
		makePenalty(l.ID, "2026-05-02", 1),
		makePenalty(other.ID, "2026-05-02", 1),
	} {
		if _, err := repo.CreateIfAbsent(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListByLoan(ctx, l.ID)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByLoan: %d, %v", len(got), err)
	}
	if got[0].Day != "2026-05-02" || got[1].ElapsedDays != 2 {
		t.Fatalf("ListByLoan order: %+v", got)
	}

	p := got[0]
	p.Status = penalty.StatusPaid
	p.AppendNote("settled")
	if err := repo.Save(ctx, &p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, _ := repo.ListByLoan(ctx, l.ID)
	if again[0].Status != penalty.StatusPaid || again[0].Notes != "settled" {
		t.Fatalf("Save not persisted: %+v", again[0])
	}

	both, err := repo.ListByLoanIDs(ctx, []uint64{l.ID, other.ID})
	if err != nil || len(both) != 3 {
		t.Fatalf("ListByLoanIDs: %d, %v", len(both), err)
	}
	none, err := repo.ListByLoanIDs(ctx, nil)
	if err != nil || len(none) != 0 {
		t.Fatalf("ListByLoanIDs(nil): %v %v", none, err)
	}
}

func TestPenalty_SaveUnknown(t *testing.T) {
	repo := NewPenaltyRepository(openTestDB(t))
	err := repo.Save(context.Background(), &penalty.Penalty{ID: 999, Status: penalty.StatusPaid})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
