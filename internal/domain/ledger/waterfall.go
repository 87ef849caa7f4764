package ledger

import (
	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/penalty"
)

// Split is an amount broken down by debt category, in waterfall order.
type Split struct {
	Penalties decimal.Decimal
	Profit    decimal.Decimal
	Principal decimal.Decimal
}

func (s Split) Total() decimal.Decimal {
	return s.Penalties.Add(s.Profit).Add(s.Principal)
}

func (s Split) Sub(o Split) Split {
	return Split{
		Penalties: s.Penalties.Sub(o.Penalties),
		Profit:    s.Profit.Sub(o.Profit),
		Principal: s.Principal.Sub(o.Principal),
	}
}

// Obligation is everything a loan owes over its life: billable penalties,
// the flat profit margin and the principal.
func Obligation(principal decimal.Decimal, penalties []penalty.Penalty) Split {
	due := decimal.Zero
	for _, p := range penalties {
		if p.Status.Billable() {
			due = due.Add(p.Amount)
		}
	}
	return Split{
		Penalties: due,
		Profit:    ProfitDue(principal),
		Principal: principal,
	}
}

// Allocate runs funds through the waterfall: penalties, then profit, then
// principal, each capped by what is left of funds and of the category.
func Allocate(funds decimal.Decimal, due Split) Split {
	if funds.IsNegative() {
		funds = decimal.Zero
	}
	var out Split
	out.Penalties = decimal.Min(funds, nonNegative(due.Penalties))
	funds = funds.Sub(out.Penalties)
	out.Profit = decimal.Min(funds, nonNegative(due.Profit))
	funds = funds.Sub(out.Profit)
	out.Principal = decimal.Min(funds, nonNegative(due.Principal))
	return out
}

// Breakdown is the state of a loan's ledger right after one payment.
// Allocations are computed on cumulative totals, so the split of any single
// payment is the difference between the cumulative splits around it.
type Breakdown struct {
	Due         Split
	PaidBefore  decimal.Decimal
	PaidAfter   decimal.Decimal
	Allocated   Split // cumulative, including this payment
	ThisPayment Split
	// Balance may go negative on overpayment; see Outstanding.
	Balance decimal.Decimal
}

// Compute applies amount on top of paidBefore. Pass a zero amount for a
// read-only statement.
func Compute(principal decimal.Decimal, penalties []penalty.Penalty, paidBefore, amount decimal.Decimal) Breakdown {
	due := Obligation(principal, penalties)
	paidAfter := paidBefore.Add(amount)
	before := Allocate(paidBefore, due)
	after := Allocate(paidAfter, due)
	return Breakdown{
		Due:         due,
		PaidBefore:  paidBefore,
		PaidAfter:   paidAfter,
		Allocated:   after,
		ThisPayment: after.Sub(before),
		Balance:     due.Total().Sub(paidAfter),
	}
}

func (b Breakdown) TotalDue() decimal.Decimal { return b.Due.Total() }

// Outstanding is the balance floored at zero.
func (b Breakdown) Outstanding() decimal.Decimal { return nonNegative(b.Balance) }

// Remaining is what is still owed per category.
func (b Breakdown) Remaining() Split { return b.Due.Sub(b.Allocated) }

// Settled reports whether the balance is within rounding tolerance of zero.
func (b Breakdown) Settled() bool { return b.Balance.LessThanOrEqual(Tolerance) }

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
