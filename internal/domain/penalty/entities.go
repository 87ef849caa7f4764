package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const KindLate Kind = "late"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApplied   Status = "applied"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusSimulated Status = "simulated"
)

// Open penalties still count against the borrower.
func (s Status) Open() bool { return s == StatusPending || s == StatusApplied }

// Billable penalties are part of the loan's total obligation, settled or not.
func (s Status) Billable() bool { return s.Open() || s == StatusPaid }

// DayLayout is the format of Penalty.Day.
const DayLayout = "2006-01-02"

// Penalty is one day of late charge. At most one row exists per
// (loan, kind, day); the unique index backs the accrual existence check.
type Penalty struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PenaltyID   string          `gorm:"column:penalty_id;size:32;not null;uniqueIndex:ux_penalties_penalty_id" json:"penalty_id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_penalties_loan_kind_day,priority:1" json:"-"`
	ClientID    string          `gorm:"column:client_id;size:32;not null;index" json:"client_id"`
	Kind        Kind            `gorm:"column:kind;size:16;not null;uniqueIndex:ux_penalties_loan_kind_day,priority:2" json:"kind"`
	Day         string          `gorm:"column:day;size:10;not null;uniqueIndex:ux_penalties_loan_kind_day,priority:3" json:"day"`
	ElapsedDays int             `gorm:"column:elapsed_days;not null" json:"elapsed_days"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	Status      Status          `gorm:"column:status;size:16;not null" json:"status"`
	AppliedAt   time.Time       `gorm:"column:applied_at;not null" json:"applied_at"`
	Notes       string          `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Penalty) TableName() string { return "penalties" }

// AppendNote adds to the free-text notes without losing earlier entries.
func (p *Penalty) AppendNote(note string) {
	if p.Notes == "" {
		p.Notes = note
		return
	}
	p.Notes += " | " + note
}
