package accrual

import (
	"context"
	"fmt"
	"log"
	"time"

	"microcredit-backoffice/internal/domain/ledger"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/internal/usecase/notify"
	"microcredit-backoffice/pkg/clock"
	"microcredit-backoffice/pkg/id"
)

// ReminderDays are the days-before-due on which a reminder goes out.
var ReminderDays = []int{10, 5}

// Reminder notifies clients of active loans approaching their due date.
// It persists nothing.
type Reminder struct {
	loans    loan.Repository
	notifier notify.Notifier
	clock    clock.Clock
	loc      *time.Location
}

func NewReminder(loans loan.Repository, n notify.Notifier, c clock.Clock) *Reminder {
	if c == nil {
		c = clock.System{}
	}
	return &Reminder{loans: loans, notifier: n, clock: c, loc: time.UTC}
}

func (r *Reminder) WithLocation(loc *time.Location) *Reminder {
	if loc != nil {
		r.loc = loc
	}
	return r
}

func isReminderDay(n int) bool {
	for _, d := range ReminderDays {
		if d == n {
			return true
		}
	}
	return false
}

func (r *Reminder) Run(ctx context.Context) (ReminderReport, error) {
	now := r.clock.Now()
	rep := ReminderReport{RunID: id.NewRunID(), Failures: []Failure{}}

	loans, err := r.loans.ListDueAfter(ctx, now)
	if err != nil {
		return rep, fmt.Errorf("list upcoming loans: %w", err)
	}

	for _, l := range loans {
		rep.Scanned++
		left := ledger.DaysBetween(now, l.DueAt, r.loc)
		if !isReminderDay(left) || r.notifier == nil {
			continue
		}
		msg := fmt.Sprintf("your loan %s is due in %d days, on %s.", l.LoanID, left, ledger.DayKey(l.DueAt, r.loc))
		out := r.notifier.Send(ctx, l.ClientID, notification.KindReminder, msg)
		if out.Delivered {
			rep.Notified++
			continue
		}
		if out.Err != nil {
			rep.Failures = append(rep.Failures, Failure{LoanID: l.LoanID, Error: out.Err.Error()})
		}
	}

	log.Printf("[reminder] run=%s scanned=%d notified=%d failures=%d", rep.RunID, rep.Scanned, rep.Notified, len(rep.Failures))
	return rep, nil
}
