package accrual

import (
	"context"
	"time"
)

// Failure is one loan a run could not process.
type Failure struct {
	LoanID string `json:"loan_id"`
	Error  string `json:"error"`
}

// RunReport summarises one accrual pass.
type RunReport struct {
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	Scanned          int       `json:"scanned"`
	Skipped          int       `json:"skipped"`
	PenaltiesCreated int       `json:"penalties_created"`
	MarkedDelinquent int       `json:"marked_delinquent"`
	Notified         int       `json:"notified"`
	Failures         []Failure `json:"failures"`
}

// ReminderReport summarises one reminder pass.
type ReminderReport struct {
	RunID    string    `json:"run_id"`
	Scanned  int       `json:"scanned"`
	Notified int       `json:"notified"`
	Failures []Failure `json:"failures"`
}

// Locker serialises work on one loan across processes. ok is false when
// someone else holds key.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), ok bool, err error)
}
