package risk

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"microcredit-backoffice/internal/domain/ledger"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
)

type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

type Bucket string

const (
	BucketCurrent    Bucket = "current"
	BucketLate1to7   Bucket = "late_1_7"
	BucketLate8to30  Bucket = "late_8_30"
	BucketLateOver30 Bucket = "late_over_30"
	BucketDelinquent Bucket = "delinquent"
)

// Buckets in escalating order.
var Buckets = []Bucket{BucketCurrent, BucketLate1to7, BucketLate8to30, BucketLateOver30, BucketDelinquent}

var (
	weights = map[Bucket]int64{
		BucketLate1to7:   1,
		BucketLate8to30:  2,
		BucketLateOver30: 3,
		BucketDelinquent: 5,
	}
	provisionRates = map[Bucket]decimal.Decimal{
		BucketCurrent:    decimal.Zero,
		BucketLate1to7:   decimal.RequireFromString("0.02"),
		BucketLate8to30:  decimal.RequireFromString("0.10"),
		BucketLateOver30: decimal.RequireFromString("0.30"),
		BucketDelinquent: decimal.NewFromInt(1),
	}
	scoreFactor = decimal.NewFromInt(20)
	scoreCap    = decimal.NewFromInt(100)
)

var recommended = map[Level]string{
	LevelLow:      "situation under control; keep current practices",
	LevelModerate: "keep regular monitoring and follow up on arrears",
	LevelHigh:     "monitor closely and start preventive collection",
	LevelCritical: "immediate action: review lending policy and intensify collection",
}

// TopClients is how many clients the penalty ranking keeps.
const TopClients = 5

// Portfolio is the ledger slice a classification reads.
type Portfolio struct {
	Loans     []loan.Loan
	Payments  []payment.Payment
	Penalties []penalty.Penalty
}

type BucketStat struct {
	Loans       int
	Outstanding decimal.Decimal // principal not yet repaid
	Provision   decimal.Decimal
}

type KindStat struct {
	Kind   penalty.Kind
	Count  int
	Amount decimal.Decimal
}

type ClientStat struct {
	ClientID  string
	Penalties int
	Amount    decimal.Decimal
}

// Assessment is the full-precision result of Classify.
type Assessment struct {
	Buckets           map[Bucket]BucketStat
	Considered        int // active + delinquent loans
	Score             decimal.Decimal
	Level             Level
	Provision         decimal.Decimal
	PenaltyCount      int
	PenaltyAmount     decimal.Decimal
	ByKind            []KindStat
	TopClients        []ClientStat
	RecommendedAction string
}

func LevelFor(score decimal.Decimal) Level {
	switch {
	case score.LessThan(decimal.NewFromInt(20)):
		return LevelLow
	case score.LessThan(decimal.NewFromInt(50)):
		return LevelModerate
	case score.LessThan(decimal.NewFromInt(75)):
		return LevelHigh
	default:
		return LevelCritical
	}
}

// BucketFor places an active loan by calendar days past due.
func BucketFor(daysOverdue int) Bucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 7:
		return BucketLate1to7
	case daysOverdue <= 30:
		return BucketLate8to30
	default:
		return BucketLateOver30
	}
}

// Classify scores a portfolio. Only active and delinquent loans are
// bucketed; penalties of any loan in p count toward the penalty figures.
// An empty portfolio scores zero.
func Classify(p Portfolio, now time.Time, loc *time.Location) Assessment {
	if loc == nil {
		loc = time.UTC
	}
	a := Assessment{
		Buckets:       make(map[Bucket]BucketStat, len(Buckets)),
		Score:         decimal.Zero,
		Provision:     decimal.Zero,
		PenaltyAmount: decimal.Zero,
	}
	for _, b := range Buckets {
		a.Buckets[b] = BucketStat{Outstanding: decimal.Zero, Provision: decimal.Zero}
	}

	paidByLoan := map[uint64]decimal.Decimal{}
	for _, py := range p.Payments {
		paidByLoan[py.LoanID] = paidByLoan[py.LoanID].Add(py.Amount)
	}
	pensByLoan := map[uint64][]penalty.Penalty{}
	for _, pn := range p.Penalties {
		pensByLoan[pn.LoanID] = append(pensByLoan[pn.LoanID], pn)
	}

	var weighted int64
	for _, l := range p.Loans {
		var b Bucket
		switch l.Status {
		case loan.StatusDelinquent:
			b = BucketDelinquent
		case loan.StatusActive:
			b = BucketFor(ledger.DaysBetween(l.DueAt, now, loc))
		default:
			continue
		}
		a.Considered++
		weighted += weights[b]

		bd := ledger.Compute(l.Principal, pensByLoan[l.ID], paidByLoan[l.ID], decimal.Zero)
		st := a.Buckets[b]
		st.Loans++
		st.Outstanding = st.Outstanding.Add(bd.Remaining().Principal)
		a.Buckets[b] = st
	}

	for _, b := range Buckets {
		st := a.Buckets[b]
		st.Provision = st.Outstanding.Mul(provisionRates[b])
		a.Buckets[b] = st
		a.Provision = a.Provision.Add(st.Provision)
	}

	if a.Considered > 0 {
		a.Score = decimal.Min(scoreCap, decimal.NewFromInt(weighted).Mul(scoreFactor).Div(decimal.NewFromInt(int64(a.Considered))))
	}
	a.Level = LevelFor(a.Score)
	a.RecommendedAction = recommended[a.Level]

	a.ByKind, a.TopClients = penaltyStats(p.Penalties, &a)
	return a
}

func penaltyStats(ps []penalty.Penalty, a *Assessment) ([]KindStat, []ClientStat) {
	kinds := map[penalty.Kind]*KindStat{}
	clients := map[string]*ClientStat{}
	for _, p := range ps {
		if !p.Status.Billable() {
			continue
		}
		a.PenaltyCount++
		a.PenaltyAmount = a.PenaltyAmount.Add(p.Amount)

		k := kinds[p.Kind]
		if k == nil {
			k = &KindStat{Kind: p.Kind, Amount: decimal.Zero}
			kinds[p.Kind] = k
		}
		k.Count++
		k.Amount = k.Amount.Add(p.Amount)

		c := clients[p.ClientID]
		if c == nil {
			c = &ClientStat{ClientID: p.ClientID, Amount: decimal.Zero}
			clients[p.ClientID] = c
		}
		c.Penalties++
		c.Amount = c.Amount.Add(p.Amount)
	}

	byKind := make([]KindStat, 0, len(kinds))
	for _, k := range kinds {
		byKind = append(byKind, *k)
	}
	sort.Slice(byKind, func(i, j int) bool { return byKind[i].Kind < byKind[j].Kind })

	top := make([]ClientStat, 0, len(clients))
	for _, c := range clients {
		top = append(top, *c)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Penalties != top[j].Penalties {
			return top[i].Penalties > top[j].Penalties
		}
		return top[i].ClientID < top[j].ClientID
	})
	if len(top) > TopClients {
		top = top[:TopClients]
	}
	return byKind, top
}
