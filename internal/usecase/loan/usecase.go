package loan

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/ledger"
	domain "microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
	"microcredit-backoffice/internal/domain/uow"
	"microcredit-backoffice/internal/usecase/notify"
	paymentuc "microcredit-backoffice/internal/usecase/payment"
	"microcredit-backoffice/pkg/clock"
	"microcredit-backoffice/pkg/id"
)

const maxClientIDLen = 32

type Usecase struct {
	repo      domain.Repository
	payments  payment.Repository
	penalties penalty.Repository
	tx        uow.UnitOfWork
	notifier  notify.Notifier
	clock     clock.Clock
}

func NewUsecase(r domain.Repository, payments payment.Repository, penalties penalty.Repository, tx uow.UnitOfWork, n notify.Notifier, c clock.Clock) *Usecase {
	if c == nil {
		c = clock.System{}
	}
	return &Usecase{repo: r, payments: payments, penalties: penalties, tx: tx, notifier: n, clock: c}
}

// Issue creates an active loan and sends the client a confirmation.
func (u *Usecase) Issue(ctx context.Context, in IssueInput) (*LoanDTO, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" || len(clientID) > maxClientIDLen {
		return nil, domain.Invalid("client_id", "must be 1 to 32 characters")
	}
	if !in.Principal.IsPositive() {
		return nil, domain.Invalid("principal", "must be greater than zero")
	}
	now := u.clock.Now().UTC()
	if !in.DueAt.After(now) {
		return nil, domain.Invalid("due_at", "must be in the future")
	}

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		ClientID:        clientID,
		Principal:       in.Principal,
		IssuedAt:        now,
		DueAt:           in.DueAt.UTC(),
		Status:          domain.StatusActive,
		StatusUpdatedAt: now,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		total := l.Principal.Add(ledger.ProfitDue(l.Principal))
		msg := fmt.Sprintf("loan %s of %s issued. Repay %s by %s.",
			l.LoanID, ledger.Money(l.Principal), ledger.Money(total), l.DueAt.Format("2006-01-02"))
		u.notifier.Send(ctx, l.ClientID, notification.KindLoanConfirmation, msg)
	}
	log.Printf("[loan] issued loan=%s client=%s principal=%s", l.LoanID, l.ClientID, ledger.Money(l.Principal))

	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) ListByClient(ctx context.Context, clientID string) ([]LoanDTO, error) {
	ls, err := u.repo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toDTO(&ls[i]))
	}
	return out, nil
}

// Delete removes a loan that has no ledger history. The loan row stays
// locked from the history check to the delete, so a concurrent payment
// either lands first and blocks the delete or finds the loan gone.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	return u.tx.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		nPay, err := r.Payments.CountByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		nPen, err := r.Penalties.CountByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if nPay > 0 || nPen > 0 {
			return domain.ErrLoanHasDependents
		}
		return r.Loans.Delete(ctx, l)
	})
}

// Statement is the loan's ledger as of now, without recording anything.
func (u *Usecase) Statement(ctx context.Context, loanID string) (*StatementDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	pays, err := u.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	pens, err := u.penalties.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	b := ledger.Compute(l.Principal, pens, payment.Total(pays), decimal.Zero)
	st := &StatementDTO{
		Loan:      toDTO(l),
		Breakdown: paymentuc.ToBreakdownDTO(b),
		Penalties: paymentuc.ToPenaltySummaryDTO(ledger.SummarizePenalties(pens)),
		Payments:  make([]paymentuc.PaymentDTO, 0, len(pays)),
	}
	for _, p := range pays {
		st.Payments = append(st.Payments, paymentuc.ToPaymentDTO(p, l.LoanID))
	}
	return st, nil
}

// Penalties lists the loan's penalties oldest day first with a summary.
func (u *Usecase) Penalties(ctx context.Context, loanID string) (*PenaltiesDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	pens, err := u.penalties.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := &PenaltiesDTO{
		LoanID:    l.LoanID,
		Summary:   paymentuc.ToPenaltySummaryDTO(ledger.SummarizePenalties(pens)),
		Penalties: make([]PenaltyDTO, 0, len(pens)),
	}
	for _, p := range pens {
		out.Penalties = append(out.Penalties, toPenaltyDTO(p))
	}
	return out, nil
}
