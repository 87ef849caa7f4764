package ledger

import "github.com/shopspring/decimal"

var (
	// ProfitRate is the flat margin owed on top of principal.
	ProfitRate = decimal.RequireFromString("0.20")
	// LatePenaltyRate is charged on principal once per overdue calendar day.
	LatePenaltyRate = decimal.RequireFromString("0.05")
	// Tolerance absorbs rounding when deciding whether a loan is settled.
	Tolerance = decimal.RequireFromString("0.01")
)

func ProfitDue(principal decimal.Decimal) decimal.Decimal {
	return principal.Mul(ProfitRate)
}

func DailyPenalty(principal decimal.Decimal) decimal.Decimal {
	return principal.Mul(LatePenaltyRate)
}

// Money renders an amount for presentation.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }
