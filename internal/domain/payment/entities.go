package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodMPesa        Method = "mpesa"
	MethodEMola        Method = "emola"
	MethodMKesh        Method = "mkesh"
	MethodPledge       Method = "pledge"
	MethodOther        Method = "other"
)

var Methods = []Method{
	MethodCash, MethodBankTransfer, MethodMPesa, MethodEMola, MethodMKesh, MethodPledge, MethodOther,
}

func (m Method) Valid() bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

// Payment is immutable once created. There is no update path.
type Payment struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID string          `gorm:"column:payment_id;size:32;not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID    uint64          `gorm:"column:loan_id;not null;index:idx_payments_loan" json:"-"`
	ClientID  string          `gorm:"column:client_id;size:32;not null;index" json:"client_id"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	PaidAt    time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
	Method    Method          `gorm:"column:method;size:32;not null" json:"method"`
	Reference *string         `gorm:"column:reference;size:128" json:"reference,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// Total sums the amounts of ps.
func Total(ps []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range ps {
		sum = sum.Add(p.Amount)
	}
	return sum
}
