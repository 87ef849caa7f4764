package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/penalty"
)

// SettlePenalties returns the indexes of open penalties that are now fully
// covered, oldest day first. allocated is the cumulative amount the waterfall
// has put toward penalties; what already-paid penalties absorbed is taken off
// first. The walk stops at the first penalty that cannot be paid in full, so a
// partially covered penalty keeps its open status.
func SettlePenalties(penalties []penalty.Penalty, allocated decimal.Decimal) []int {
	available := allocated
	open := make([]int, 0, len(penalties))
	for i, p := range penalties {
		switch {
		case p.Status == penalty.StatusPaid:
			available = available.Sub(p.Amount)
		case p.Status.Open():
			open = append(open, i)
		}
	}
	sort.SliceStable(open, func(a, b int) bool {
		pa, pb := penalties[open[a]], penalties[open[b]]
		if pa.Day != pb.Day {
			return pa.Day < pb.Day
		}
		return pa.ElapsedDays < pb.ElapsedDays
	})

	var covered []int
	for _, i := range open {
		amt := penalties[i].Amount
		if available.LessThan(amt) {
			break
		}
		available = available.Sub(amt)
		covered = append(covered, i)
	}
	return covered
}

// PenaltySummary counts and totals a loan's penalties by state.
type PenaltySummary struct {
	Count          int // billable penalties
	Open           int
	Paid           int
	Cancelled      int
	TotalAmount    decimal.Decimal
	OpenAmount     decimal.Decimal
	PaidAmount     decimal.Decimal
	MaxElapsedDays int
}

func SummarizePenalties(ps []penalty.Penalty) PenaltySummary {
	s := PenaltySummary{TotalAmount: decimal.Zero, OpenAmount: decimal.Zero, PaidAmount: decimal.Zero}
	for _, p := range ps {
		if p.Status == penalty.StatusCancelled {
			s.Cancelled++
			continue
		}
		if !p.Status.Billable() {
			continue
		}
		s.Count++
		s.TotalAmount = s.TotalAmount.Add(p.Amount)
		if p.Status == penalty.StatusPaid {
			s.Paid++
			s.PaidAmount = s.PaidAmount.Add(p.Amount)
		} else {
			s.Open++
			s.OpenAmount = s.OpenAmount.Add(p.Amount)
		}
		if p.ElapsedDays > s.MaxElapsedDays {
			s.MaxElapsedDays = p.ElapsedDays
		}
	}
	return s
}

// OpenCount is the number of pending or applied penalties.
func OpenCount(ps []penalty.Penalty) int {
	n := 0
	for _, p := range ps {
		if p.Status.Open() {
			n++
		}
	}
	return n
}
