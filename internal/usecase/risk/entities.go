package risk

import (
	"time"

	"microcredit-backoffice/internal/domain/ledger"
)

type BucketDTO struct {
	Bucket      string `json:"bucket"`
	Loans       int    `json:"loans"`
	Outstanding string `json:"outstanding"`
	Provision   string `json:"provision"`
}

type KindDTO struct {
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

type ClientDTO struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name,omitempty"`
	Penalties int    `json:"penalties"`
	Amount    string `json:"amount"`
}

// Report is the presentation form of an Assessment.
type Report struct {
	GeneratedAt       time.Time   `json:"generated_at"`
	Score             string      `json:"score"`
	Level             string      `json:"level"`
	LoansConsidered   int         `json:"loans_considered"`
	Buckets           []BucketDTO `json:"buckets"`
	Provision         string      `json:"provision"`
	PenaltyCount      int         `json:"penalty_count"`
	PenaltyAmount     string      `json:"penalty_amount"`
	PenaltiesByKind   []KindDTO   `json:"penalties_by_kind"`
	TopClients        []ClientDTO `json:"top_clients"`
	RecommendedAction string      `json:"recommended_action"`
}

// ToReport renders a. names maps client ids to display names.
func ToReport(a Assessment, at time.Time, names map[string]string) *Report {
	r := &Report{
		GeneratedAt:       at,
		Score:             a.Score.StringFixed(1),
		Level:             string(a.Level),
		LoansConsidered:   a.Considered,
		Buckets:           make([]BucketDTO, 0, len(Buckets)),
		Provision:         ledger.Money(a.Provision),
		PenaltyCount:      a.PenaltyCount,
		PenaltyAmount:     ledger.Money(a.PenaltyAmount),
		PenaltiesByKind:   make([]KindDTO, 0, len(a.ByKind)),
		TopClients:        make([]ClientDTO, 0, len(a.TopClients)),
		RecommendedAction: a.RecommendedAction,
	}
	for _, b := range Buckets {
		st := a.Buckets[b]
		r.Buckets = append(r.Buckets, BucketDTO{
			Bucket:      string(b),
			Loans:       st.Loans,
			Outstanding: ledger.Money(st.Outstanding),
			Provision:   ledger.Money(st.Provision),
		})
	}
	for _, k := range a.ByKind {
		r.PenaltiesByKind = append(r.PenaltiesByKind, KindDTO{Kind: string(k.Kind), Count: k.Count, Amount: ledger.Money(k.Amount)})
	}
	for _, c := range a.TopClients {
		r.TopClients = append(r.TopClients, ClientDTO{
			ClientID:  c.ClientID,
			Name:      names[c.ClientID],
			Penalties: c.Penalties,
			Amount:    ledger.Money(c.Amount),
		})
	}
	return r
}
