package risk

import (
	"context"
	"log"
	"time"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/ledger"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
	"microcredit-backoffice/pkg/clock"
)

// ReportCache stores rendered reports. A miss is (nil, nil).
type ReportCache interface {
	Get(ctx context.Context, key string) (*Report, error)
	Set(ctx context.Context, key string, r *Report) error
}

// Service reads the open portfolio and classifies it. It writes nothing
// except the optional cache.
type Service struct {
	loans     loan.Repository
	payments  payment.Repository
	penalties penalty.Repository
	dir       client.Directory
	cache     ReportCache
	clock     clock.Clock
	loc       *time.Location
}

func NewService(loans loan.Repository, payments payment.Repository, penalties penalty.Repository, dir client.Directory, c clock.Clock) *Service {
	if c == nil {
		c = clock.System{}
	}
	return &Service{loans: loans, payments: payments, penalties: penalties, dir: dir, clock: c, loc: time.UTC}
}

func (s *Service) WithCache(c ReportCache) *Service {
	s.cache = c
	return s
}

func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

func cacheKey(day string) string { return "risk:report:" + day }

// Report returns the day's cached report or builds a fresh one. Cache
// failures are logged and bypassed.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	now := s.clock.Now()
	key := cacheKey(ledger.DayKey(now, s.loc))

	if s.cache != nil {
		r, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[risk] cache get %s: %v", key, err)
		} else if r != nil {
			return r, nil
		}
	}

	p, err := s.portfolio(ctx)
	if err != nil {
		return nil, err
	}
	a := Classify(p, now, s.loc)
	r := ToReport(a, now.UTC(), s.names(ctx, a.TopClients))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, r); err != nil {
			log.Printf("[risk] cache set %s: %v", key, err)
		}
	}
	return r, nil
}

func (s *Service) portfolio(ctx context.Context) (Portfolio, error) {
	loans, err := s.loans.ListByStatus(ctx, loan.StatusActive, loan.StatusDelinquent)
	if err != nil {
		return Portfolio{}, err
	}
	if len(loans) == 0 {
		return Portfolio{}, nil
	}
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	pays, err := s.payments.ListByLoanIDs(ctx, ids)
	if err != nil {
		return Portfolio{}, err
	}
	pens, err := s.penalties.ListByLoanIDs(ctx, ids)
	if err != nil {
		return Portfolio{}, err
	}
	return Portfolio{Loans: loans, Payments: pays, Penalties: pens}, nil
}

func (s *Service) names(ctx context.Context, top []ClientStat) map[string]string {
	out := make(map[string]string, len(top))
	if s.dir == nil {
		return out
	}
	for _, c := range top {
		cl, err := s.dir.Lookup(ctx, c.ClientID)
		if err != nil || cl == nil {
			continue
		}
		out[c.ClientID] = cl.Name
	}
	return out
}
