package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusPaid       Status = "paid"
	StatusDelinquent Status = "delinquent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaid, StatusDelinquent:
		return true
	}
	return false
}

// Loan is the ledger head. Status is a cached projection of the ledger and is
// rewritten after every payment and accrual run.
type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ClientID        string          `gorm:"size:32;index:idx_loans_client" json:"client_id"`
	Principal       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"principal"`
	IssuedAt        time.Time       `gorm:"not null" json:"issued_at"`
	DueAt           time.Time       `gorm:"not null;index:idx_loans_status_due,priority:2" json:"due_at"`
	Status          Status          `gorm:"size:16;not null;default:'active';index:idx_loans_status_due,priority:1" json:"status"`
	StatusUpdatedAt time.Time       `json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// IsClosed reports whether the loan no longer accepts payments or penalties.
func (l *Loan) IsClosed() bool { return l.Status == StatusPaid }
