package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/loan"
)

// ResolveStatus is the loan status decision table:
//
//	paid       balance within tolerance and no open penalties
//	delinquent due date passed, or any open penalty
//	active     otherwise
//
// "Due date passed" compares instants, not calendar days: a loan is
// delinquent from the first second after dueAt, even though accrual and
// risk bucketing count it as zero days overdue until the next local day.
func ResolveStatus(balance decimal.Decimal, openPenalties int, dueAt, now time.Time) loan.Status {
	if balance.LessThanOrEqual(Tolerance) && openPenalties == 0 {
		return loan.StatusPaid
	}
	if now.After(dueAt) || openPenalties > 0 {
		return loan.StatusDelinquent
	}
	return loan.StatusActive
}
