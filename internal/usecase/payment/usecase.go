package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"microcredit-backoffice/internal/domain/ledger"
	domainLoan "microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/notification"
	domainPayment "microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
	"microcredit-backoffice/internal/domain/uow"
	"microcredit-backoffice/internal/usecase/notify"
	"microcredit-backoffice/pkg/clock"
	"microcredit-backoffice/pkg/id"
)

const maxReferenceLen = 128

// Engine records payments and runs them through the allocation waterfall.
type Engine struct {
	loans    domainLoan.Repository
	payments domainPayment.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
	clock    clock.Clock
	loc      *time.Location
}

func NewEngine(loans domainLoan.Repository, payments domainPayment.Repository, tx uow.UnitOfWork, n notify.Notifier, c clock.Clock) *Engine {
	if c == nil {
		c = clock.System{}
	}
	return &Engine{loans: loans, payments: payments, uow: tx, notifier: n, clock: c, loc: time.UTC}
}

// WithLocation sets the zone used to stamp settlement notes.
func (e *Engine) WithLocation(loc *time.Location) *Engine {
	if loc != nil {
		e.loc = loc
	}
	return e
}

func validate(in ApplyInput) error {
	if strings.TrimSpace(in.LoanID) == "" {
		return domainLoan.Invalid("loan_id", "is required")
	}
	if !in.Amount.IsPositive() {
		return domainLoan.Invalid("amount", "must be greater than zero")
	}
	if !in.Method.Valid() {
		return domainLoan.Invalid("method", fmt.Sprintf("unknown payment method %q", in.Method))
	}
	if in.Reference != nil && len(*in.Reference) > maxReferenceLen {
		return domainLoan.Invalid("reference", "too long")
	}
	return nil
}

// Apply records one payment. The payment row, penalty flips and the loan's
// new status commit together; the confirmation goes out after the commit and
// its result is only reported.
func (e *Engine) Apply(ctx context.Context, in ApplyInput) (*Receipt, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if e.uow == nil {
		return nil, fmt.Errorf("payment engine: no unit of work")
	}

	var (
		receipt  *Receipt
		clientID string
		loanID   string
		status   domainLoan.Status
		balance  string
	)
	err := e.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// Paid loans are closed for good.
		if l.IsClosed() {
			return domainLoan.ErrLoanAlreadyPaid
		}

		prior, err := r.Payments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		pens, err := r.Penalties.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}

		now := e.clock.Now().UTC()
		b := ledger.Compute(l.Principal, pens, domainPayment.Total(prior), in.Amount)

		p := &domainPayment.Payment{
			PaymentID: id.NewID32(),
			LoanID:    l.ID,
			ClientID:  l.ClientID,
			Amount:    in.Amount,
			PaidAt:    now,
			Method:    in.Method,
			Reference: in.Reference,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		settled := ledger.SettlePenalties(pens, b.Allocated.Penalties)
		for _, i := range settled {
			pen := &pens[i]
			pen.Status = penalty.StatusPaid
			pen.AppendNote(fmt.Sprintf("settled by payment %s on %s", p.PaymentID, ledger.DayKey(now, e.loc)))
			if err := r.Penalties.Save(ctx, pen); err != nil {
				return err
			}
		}

		next := ledger.ResolveStatus(b.Balance, ledger.OpenCount(pens), l.DueAt, now)
		if next != l.Status {
			l.Status = next
			l.StatusUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		summary := ToPenaltySummaryDTO(ledger.SummarizePenalties(pens))
		summary.Liquidated = len(settled)
		receipt = &Receipt{
			Payment:     ToPaymentDTO(*p, l.LoanID),
			Status:      string(l.Status),
			Penalties:   summary,
			Breakdown:   ToBreakdownDTO(b),
			ThisPayment: ToSplitDTO(b.ThisPayment),
		}
		clientID, loanID, status, balance = l.ClientID, l.LoanID, l.Status, ledger.Money(b.Outstanding())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if e.notifier != nil {
		msg := fmt.Sprintf("payment of %s received for loan %s; balance remaining %s.", ledger.Money(in.Amount), loanID, balance)
		if status == domainLoan.StatusPaid {
			msg = fmt.Sprintf("your loan %s is fully settled. Thank you.", loanID)
		}
		receipt.Notification = e.notifier.Send(ctx, clientID, notification.KindPaymentConfirmation, msg)
	}
	log.Printf("[payment] loan=%s payment=%s amount=%s status=%s", loanID, receipt.Payment.PaymentID, receipt.Payment.Amount, status)
	return receipt, nil
}

// ListByLoan returns the loan's payments, newest first.
func (e *Engine) ListByLoan(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	l, err := e.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	ps, err := e.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := len(ps) - 1; i >= 0; i-- {
		out = append(out, ToPaymentDTO(ps[i], l.LoanID))
	}
	return out, nil
}
