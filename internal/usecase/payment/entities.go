package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/ledger"
	domainPayment "microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/usecase/notify"
)

type ApplyInput struct {
	LoanID    string
	Amount    decimal.Decimal
	Method    domainPayment.Method
	Reference *string
}

type PaymentDTO struct {
	PaymentID string    `json:"payment_id"`
	LoanID    string    `json:"loan_id"`
	ClientID  string    `json:"client_id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Reference *string   `json:"reference,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// SplitDTO is an amount per waterfall category.
type SplitDTO struct {
	Penalties string `json:"penalties"`
	Profit    string `json:"profit"`
	Principal string `json:"principal"`
}

type BreakdownDTO struct {
	Principal string   `json:"principal"`
	Profit    string   `json:"profit"`
	Penalties string   `json:"penalties"`
	TotalDue  string   `json:"total_due"`
	TotalPaid string   `json:"total_paid"`
	Balance   string   `json:"balance"`
	Allocated SplitDTO `json:"allocated"`
	Remaining SplitDTO `json:"remaining"`
}

type PenaltySummaryDTO struct {
	Count          int    `json:"count"`
	Open           int    `json:"open"`
	Paid           int    `json:"paid"`
	Cancelled      int    `json:"cancelled"`
	Liquidated     int    `json:"liquidated"` // flipped to paid by this payment
	TotalAmount    string `json:"total_amount"`
	OpenAmount     string `json:"open_amount"`
	PaidAmount     string `json:"paid_amount"`
	MaxElapsedDays int    `json:"max_elapsed_days"`
}

// Receipt is everything the caller learns from one applied payment.
type Receipt struct {
	Payment      PaymentDTO        `json:"payment"`
	Status       string            `json:"status"`
	Penalties    PenaltySummaryDTO `json:"penalties"`
	Breakdown    BreakdownDTO      `json:"breakdown"`
	ThisPayment  SplitDTO          `json:"this_payment"`
	Notification notify.Outcome    `json:"notification"`
}

func ToPaymentDTO(p domainPayment.Payment, loanID string) PaymentDTO {
	return PaymentDTO{
		PaymentID: p.PaymentID,
		LoanID:    loanID,
		ClientID:  p.ClientID,
		Amount:    ledger.Money(p.Amount),
		Method:    string(p.Method),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

func ToSplitDTO(s ledger.Split) SplitDTO {
	return SplitDTO{
		Penalties: ledger.Money(s.Penalties),
		Profit:    ledger.Money(s.Profit),
		Principal: ledger.Money(s.Principal),
	}
}

func ToBreakdownDTO(b ledger.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		Principal: ledger.Money(b.Due.Principal),
		Profit:    ledger.Money(b.Due.Profit),
		Penalties: ledger.Money(b.Due.Penalties),
		TotalDue:  ledger.Money(b.TotalDue()),
		TotalPaid: ledger.Money(b.PaidAfter),
		Balance:   ledger.Money(b.Outstanding()),
		Allocated: ToSplitDTO(b.Allocated),
		Remaining: ToSplitDTO(b.Remaining()),
	}
}

func ToPenaltySummaryDTO(s ledger.PenaltySummary) PenaltySummaryDTO {
	return PenaltySummaryDTO{
		Count:          s.Count,
		Open:           s.Open,
		Paid:           s.Paid,
		Cancelled:      s.Cancelled,
		TotalAmount:    ledger.Money(s.TotalAmount),
		OpenAmount:     ledger.Money(s.OpenAmount),
		PaidAmount:     ledger.Money(s.PaidAmount),
		MaxElapsedDays: s.MaxElapsedDays,
	}
}
