package accrual

import (
	"context"
	"fmt"
	"log"
	"time"

	"microcredit-backoffice/internal/domain/ledger"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/internal/domain/penalty"
	"microcredit-backoffice/internal/domain/uow"
	"microcredit-backoffice/internal/usecase/notify"
	"microcredit-backoffice/pkg/clock"
	"microcredit-backoffice/pkg/id"
)

// Engine backfills one late penalty per overdue calendar day and marks
// overdue loans delinquent. Safe to run at any cadence.
type Engine struct {
	loans    loan.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
	clock    clock.Clock
	loc      *time.Location
	locker   Locker
}

func NewEngine(loans loan.Repository, tx uow.UnitOfWork, n notify.Notifier, c clock.Clock) *Engine {
	if c == nil {
		c = clock.System{}
	}
	return &Engine{loans: loans, uow: tx, notifier: n, clock: c, loc: time.UTC}
}

// WithLocation sets the zone whose calendar days penalties are keyed on.
func (e *Engine) WithLocation(loc *time.Location) *Engine {
	if loc != nil {
		e.loc = loc
	}
	return e
}

func (e *Engine) WithLocker(l Locker) *Engine {
	e.locker = l
	return e
}

type loanResult struct {
	skipped bool
	created int
	marked  bool
	today   *penalty.Penalty
}

// Run processes every overdue loan. A failing loan is logged and recorded in
// the report; the others still run. The error is only for a failed scan.
func (e *Engine) Run(ctx context.Context) (RunReport, error) {
	now := e.clock.Now()
	rep := RunReport{RunID: id.NewRunID(), StartedAt: now, Failures: []Failure{}}

	loans, err := e.loans.ListOverdue(ctx, now)
	if err != nil {
		rep.FinishedAt = e.clock.Now()
		return rep, fmt.Errorf("list overdue loans: %w", err)
	}
	log.Printf("[accrual] run=%s scanning %d overdue loans", rep.RunID, len(loans))

	for _, l := range loans {
		if err := ctx.Err(); err != nil {
			rep.FinishedAt = e.clock.Now()
			return rep, err
		}
		rep.Scanned++

		res, err := e.accrueLoan(ctx, l, now)
		if err != nil {
			log.Printf("[accrual] run=%s loan=%s: %v", rep.RunID, l.LoanID, err)
			rep.Failures = append(rep.Failures, Failure{LoanID: l.LoanID, Error: err.Error()})
			continue
		}
		if res.skipped {
			rep.Skipped++
			continue
		}
		rep.PenaltiesCreated += res.created
		if res.marked {
			rep.MarkedDelinquent++
		}
		if res.today != nil && e.notifier != nil {
			msg := fmt.Sprintf("a late fee of %s was applied to loan %s today (day %d overdue).",
				ledger.Money(res.today.Amount), l.LoanID, res.today.ElapsedDays)
			if e.notifier.Send(ctx, l.ClientID, notification.KindPenalty, msg).Delivered {
				rep.Notified++
			}
		}
	}

	rep.FinishedAt = e.clock.Now()
	log.Printf("[accrual] run=%s done scanned=%d skipped=%d created=%d delinquent=%d notified=%d failures=%d",
		rep.RunID, rep.Scanned, rep.Skipped, rep.PenaltiesCreated, rep.MarkedDelinquent, rep.Notified, len(rep.Failures))
	return rep, nil
}

func (e *Engine) accrueLoan(ctx context.Context, l loan.Loan, now time.Time) (loanResult, error) {
	var res loanResult

	days := ledger.OverdueDays(l.DueAt, now, e.loc)
	if len(days) == 0 {
		res.skipped = true
		return res, nil
	}
	todayKey := ledger.DayKey(now, e.loc)

	if e.locker != nil {
		unlock, ok, err := e.locker.TryLock(ctx, "accrual:loan:"+l.LoanID)
		switch {
		case err != nil:
			// the unique (loan, kind, day) index still guards duplicates
			log.Printf("[accrual] lock loan=%s: %v; continuing unlocked", l.LoanID, err)
		case !ok:
			log.Printf("[accrual] loan=%s held by another run", l.LoanID)
			res.skipped = true
			return res, nil
		default:
			defer unlock()
		}
	}

	err := e.uow.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, locked *loan.Loan) error {
		if locked.IsClosed() {
			res.skipped = true
			return nil
		}
		fee := ledger.DailyPenalty(locked.Principal)

		for _, d := range days {
			exists, err := r.Penalties.ExistsForDay(ctx, locked.ID, penalty.KindLate, d.Key)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			p := &penalty.Penalty{
				PenaltyID:   id.NewID32(),
				LoanID:      locked.ID,
				ClientID:    locked.ClientID,
				Kind:        penalty.KindLate,
				Day:         d.Key,
				ElapsedDays: d.Elapsed,
				Amount:      fee,
				Status:      penalty.StatusPending,
				AppliedAt:   d.Date,
				Notes:       fmt.Sprintf("late fee day %d", d.Elapsed),
			}
			created, err := r.Penalties.CreateIfAbsent(ctx, p)
			if err != nil {
				return err
			}
			if !created {
				continue
			}
			res.created++
			if d.Key == todayKey {
				res.today = p
			}
		}

		if locked.Status != loan.StatusDelinquent {
			locked.Status = loan.StatusDelinquent
			locked.StatusUpdatedAt = now.UTC()
			if err := r.Loans.Save(ctx, locked); err != nil {
				return err
			}
			res.marked = true
		}
		return nil
	})
	if err != nil {
		return loanResult{}, err
	}
	return res, nil
}
