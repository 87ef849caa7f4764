package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/ledger"
	domain "microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/penalty"
	paymentuc "microcredit-backoffice/internal/usecase/payment"
)

type IssueInput struct {
	ClientID  string
	Principal decimal.Decimal
	DueAt     time.Time
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	ClientID        string    `json:"client_id"`
	Principal       string    `json:"principal"`
	Profit          string    `json:"profit"`
	IssuedAt        time.Time `json:"issued_at"`
	DueAt           time.Time `json:"due_at"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type PenaltyDTO struct {
	PenaltyID   string    `json:"penalty_id"`
	Kind        string    `json:"kind"`
	Day         string    `json:"day"`
	ElapsedDays int       `json:"elapsed_days"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	Notes       string    `json:"notes,omitempty"`
}

type PenaltiesDTO struct {
	LoanID    string                      `json:"loan_id"`
	Summary   paymentuc.PenaltySummaryDTO `json:"summary"`
	Penalties []PenaltyDTO                `json:"penalties"`
}

// StatementDTO is the read-only ledger view of one loan.
type StatementDTO struct {
	Loan      LoanDTO                     `json:"loan"`
	Breakdown paymentuc.BreakdownDTO      `json:"breakdown"`
	Penalties paymentuc.PenaltySummaryDTO `json:"penalties"`
	Payments  []paymentuc.PaymentDTO      `json:"payments"`
}

func toDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:          l.LoanID,
		ClientID:        l.ClientID,
		Principal:       ledger.Money(l.Principal),
		Profit:          ledger.Money(ledger.ProfitDue(l.Principal)),
		IssuedAt:        l.IssuedAt,
		DueAt:           l.DueAt,
		Status:          string(l.Status),
		StatusUpdatedAt: l.StatusUpdatedAt,
		CreatedAt:       l.CreatedAt,
	}
}

func toPenaltyDTO(p penalty.Penalty) PenaltyDTO {
	return PenaltyDTO{
		PenaltyID:   p.PenaltyID,
		Kind:        string(p.Kind),
		Day:         p.Day,
		ElapsedDays: p.ElapsedDays,
		Amount:      ledger.Money(p.Amount),
		Status:      string(p.Status),
		AppliedAt:   p.AppliedAt,
		Notes:       p.Notes,
	}
}
