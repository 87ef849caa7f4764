package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microcredit-backoffice/internal/domain/ledger"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/penalty"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", msg, want, got)
}

func latePenalty(day string, elapsed int, amount string, status penalty.Status) penalty.Penalty {
	return penalty.Penalty{
		Kind:        penalty.KindLate,
		Day:         day,
		ElapsedDays: elapsed,
		Amount:      dec(amount),
		Status:      status,
	}
}

// =============================================================================
// WATERFALL
// =============================================================================

func TestCompute_PenaltiesBeforeProfitBeforePrincipal(t *testing.T) {
	// GIVEN: principal 10000 (profit 2000) and one pending penalty of 500
	// WHEN:  the first payment is 600
	// THEN:  500 clears the penalty, 100 goes to profit, nothing to principal
	pens := []penalty.Penalty{latePenalty("2026-01-02", 1, "500", penalty.StatusPending)}

	b := ledger.Compute(dec("10000"), pens, decimal.Zero, dec("600"))

	assertAmount(t, "500", b.ThisPayment.Penalties, "penalties")
	assertAmount(t, "100", b.ThisPayment.Profit, "profit")
	assertAmount(t, "0", b.ThisPayment.Principal, "principal")
	assertAmount(t, "12500", b.TotalDue(), "total due")
	assertAmount(t, "11900", b.Outstanding(), "outstanding")
	assert.False(t, b.Settled())
}

func TestCompute_SplitIsCumulativeAcrossPartialPayments(t *testing.T) {
	pens := []penalty.Penalty{latePenalty("2026-01-02", 1, "500", penalty.StatusPaid)}

	// 600 already paid; the next 12000 finishes profit then principal
	b := ledger.Compute(dec("10000"), pens, dec("600"), dec("12000"))

	assertAmount(t, "0", b.ThisPayment.Penalties, "penalties")
	assertAmount(t, "1900", b.ThisPayment.Profit, "profit")
	assertAmount(t, "10000", b.ThisPayment.Principal, "principal")
	assertAmount(t, "12600", b.PaidAfter, "paid after")
	assertAmount(t, "0", b.Outstanding(), "outstanding floors at zero")
	assert.True(t, b.Balance.IsNegative(), "overpayment keeps a negative internal balance")
	assert.True(t, b.Settled())
}

func TestCompute_ManySmallPaymentsMatchOneLargePayment(t *testing.T) {
	pens := []penalty.Penalty{
		latePenalty("2026-01-02", 1, "16.6665", penalty.StatusPending),
		latePenalty("2026-01-03", 2, "16.6665", penalty.StatusPending),
	}
	principal := dec("333.33")

	paid := decimal.Zero
	sum := ledger.Split{Penalties: decimal.Zero, Profit: decimal.Zero, Principal: decimal.Zero}
	for i := 0; i < 7; i++ {
		b := ledger.Compute(principal, pens, paid, dec("33.3333"))
		sum = ledger.Split{
			Penalties: sum.Penalties.Add(b.ThisPayment.Penalties),
			Profit:    sum.Profit.Add(b.ThisPayment.Profit),
			Principal: sum.Principal.Add(b.ThisPayment.Principal),
		}
		paid = b.PaidAfter
	}
	one := ledger.Compute(principal, pens, decimal.Zero, paid)

	assert.True(t, one.Allocated.Penalties.Equal(sum.Penalties))
	assert.True(t, one.Allocated.Profit.Equal(sum.Profit))
	assert.True(t, one.Allocated.Principal.Equal(sum.Principal))
}

func TestObligation_ExcludesCancelledAndSimulated(t *testing.T) {
	pens := []penalty.Penalty{
		latePenalty("2026-01-02", 1, "50", penalty.StatusPending),
		latePenalty("2026-01-03", 2, "50", penalty.StatusApplied),
		latePenalty("2026-01-04", 3, "50", penalty.StatusPaid),
		latePenalty("2026-01-05", 4, "50", penalty.StatusCancelled),
		latePenalty("2026-01-06", 5, "50", penalty.StatusSimulated),
	}
	due := ledger.Obligation(dec("1000"), pens)

	assertAmount(t, "150", due.Penalties, "penalties")
	assertAmount(t, "200", due.Profit, "profit")
	assertAmount(t, "1000", due.Principal, "principal")
}

func TestAllocate_NegativeFundsAllocateNothing(t *testing.T) {
	got := ledger.Allocate(dec("-5"), ledger.Split{Penalties: dec("1"), Profit: dec("1"), Principal: dec("1")})
	assert.True(t, got.Total().IsZero())
}

// =============================================================================
// PENALTY SETTLEMENT
// =============================================================================

func TestSettlePenalties_OldestFirstAllOrNothing(t *testing.T) {
	pens := []penalty.Penalty{
		latePenalty("2026-01-04", 3, "100", penalty.StatusPending),
		latePenalty("2026-01-02", 1, "100", penalty.StatusPending),
		latePenalty("2026-01-03", 2, "100", penalty.StatusApplied),
	}

	got := ledger.SettlePenalties(pens, dec("250"))

	require.Len(t, got, 2)
	assert.Equal(t, "2026-01-02", pens[got[0]].Day)
	assert.Equal(t, "2026-01-03", pens[got[1]].Day)
}

func TestSettlePenalties_AlreadyPaidConsumeAllocationFirst(t *testing.T) {
	pens := []penalty.Penalty{
		latePenalty("2026-01-02", 1, "100", penalty.StatusPaid),
		latePenalty("2026-01-03", 2, "100", penalty.StatusPending),
	}

	assert.Empty(t, ledger.SettlePenalties(pens, dec("150")), "50 left cannot cover a 100 penalty")
	assert.Equal(t, []int{1}, ledger.SettlePenalties(pens, dec("200")))
}

func TestSummarizePenalties_PaidPlusOpenEqualsBillable(t *testing.T) {
	pens := []penalty.Penalty{
		latePenalty("2026-01-02", 1, "12.5", penalty.StatusPaid),
		latePenalty("2026-01-03", 2, "12.5", penalty.StatusPending),
		latePenalty("2026-01-04", 3, "12.5", penalty.StatusApplied),
		latePenalty("2026-01-05", 4, "12.5", penalty.StatusCancelled),
	}
	s := ledger.SummarizePenalties(pens)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Open)
	assert.Equal(t, 1, s.Paid)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 3, s.MaxElapsedDays)
	assert.True(t, s.PaidAmount.Add(s.OpenAmount).Equal(s.TotalAmount))
	assertAmount(t, "37.5", s.TotalAmount, "total")
}

// =============================================================================
// STATUS RESOLVER
// =============================================================================

func TestResolveStatus(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		balance string
		open    int
		due     time.Time
		want    loan.Status
	}{
		{"settled and clean", "0", 0, past, loan.StatusPaid},
		{"within tolerance", "0.01", 0, future, loan.StatusPaid},
		{"overpaid", "-40", 0, past, loan.StatusPaid},
		{"settled but open penalty", "0", 1, future, loan.StatusDelinquent},
		{"past due without penalties", "100", 0, past, loan.StatusDelinquent},
		{"open penalty within term", "100", 2, future, loan.StatusDelinquent},
		{"within term", "100", 0, future, loan.StatusActive},
		{"just above tolerance", "0.02", 0, future, loan.StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ResolveStatus(dec(tt.balance), tt.open, tt.due, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStatus_DueInstantNotCalendarDay(t *testing.T) {
	loc := time.FixedZone("CAT", 2*3600)
	due := time.Date(2026, 5, 10, 18, 0, 0, 0, loc)
	sameDayLater := due.Add(time.Second)

	assert.Equal(t, 0, ledger.DaysBetween(due, sameDayLater, loc), "no overdue calendar day yet")
	assert.Equal(t, loan.StatusDelinquent, ledger.ResolveStatus(dec("100"), 0, due, sameDayLater))
	assert.Equal(t, loan.StatusActive, ledger.ResolveStatus(dec("100"), 0, due, due), "at the due instant itself")
}

// =============================================================================
// CALENDAR
// =============================================================================

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	loc := time.UTC
	due := time.Date(2026, 3, 1, 23, 59, 0, 0, loc)
	today := time.Date(2026, 3, 4, 0, 1, 0, 0, loc)
	assert.Equal(t, 3, ledger.DaysBetween(due, today, loc))
	assert.Equal(t, -3, ledger.DaysBetween(today, due, loc))
}

func TestDaysBetween_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// clocks move forward on 2026-03-29
	from := time.Date(2026, 3, 28, 0, 0, 0, 0, loc)
	to := time.Date(2026, 3, 30, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, ledger.DaysBetween(from, to, loc))
}

func TestOverdueDays_ContiguousOneBased(t *testing.T) {
	loc := time.UTC
	due := time.Date(2026, 2, 27, 15, 0, 0, 0, loc)
	today := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)

	days := ledger.OverdueDays(due, today, loc)

	require.Len(t, days, 3)
	assert.Equal(t, []string{"2026-02-28", "2026-03-01", "2026-03-02"},
		[]string{days[0].Key, days[1].Key, days[2].Key})
	for i, d := range days {
		assert.Equal(t, i+1, d.Elapsed)
		assert.Equal(t, 0, d.Date.Hour())
	}
}

func TestOverdueDays_NotOverdue(t *testing.T) {
	loc := time.UTC
	due := time.Date(2026, 3, 2, 1, 0, 0, 0, loc)
	today := time.Date(2026, 3, 2, 23, 0, 0, 0, loc)
	assert.Empty(t, ledger.OverdueDays(due, today, loc))
}

func TestMoney_RoundsOnlyForDisplay(t *testing.T) {
	assert.Equal(t, "16.67", ledger.Money(dec("16.6665")))
	assert.Equal(t, "500.00", ledger.Money(ledger.DailyPenalty(dec("10000"))))
}
