package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microcredit-backoffice/pkg/clock"
)

func TestParseDaily(t *testing.T) {
	j, err := ParseDaily("accrual", "08:30", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 8, j.Hour)
	assert.Equal(t, 30, j.Minute)

	for _, bad := range []string{"", "8", "24:00", "12:60", "noon"} {
		_, err := ParseDaily("x", bad, nil)
		assert.Error(t, err, bad)
	}
}

func TestNextRun(t *testing.T) {
	maputo := time.FixedZone("CAT", 2*3600)
	j := Job{Hour: 0, Minute: 0}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"later today is tomorrow at midnight", time.Date(2026, 5, 1, 9, 0, 0, 0, maputo), time.Date(2026, 5, 2, 0, 0, 0, 0, maputo)},
		{"exactly at fire time moves a day", time.Date(2026, 5, 1, 0, 0, 0, 0, maputo), time.Date(2026, 5, 2, 0, 0, 0, 0, maputo)},
		// 23:30 UTC on the 1st is already 01:30 on the 2nd in CAT
		{"zone decides the calendar day", time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC), time.Date(2026, 5, 3, 0, 0, 0, 0, maputo)},
		{"month rollover", time.Date(2026, 5, 31, 12, 0, 0, 0, maputo), time.Date(2026, 6, 1, 0, 0, 0, 0, maputo)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := j.NextRun(tc.now, maputo)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}

	morning := Job{Hour: 8, Minute: 0}
	got := morning.NextRun(time.Date(2026, 5, 1, 7, 59, 0, 0, maputo), maputo)
	assert.True(t, got.Equal(time.Date(2026, 5, 1, 8, 0, 0, 0, maputo)))
}

func TestRunNow(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	s := New(time.UTC, clock.Fixed{At: time.Now()},
		Job{Name: "ok", Run: func(context.Context) error { calls++; return nil }},
		Job{Name: "fails", Run: func(context.Context) error { return boom }},
		Job{Name: "panics", Run: func(context.Context) error { panic("nil map") }},
	)

	require.NoError(t, s.RunNow(context.Background(), "ok"))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, s.RunNow(context.Background(), "fails"), boom)
	assert.ErrorContains(t, s.RunNow(context.Background(), "panics"), "panicked")
	assert.ErrorContains(t, s.RunNow(context.Background(), "missing"), "unknown job")
}

func TestStartFiresOnTimerAndStopReturns(t *testing.T) {
	fired := make(chan struct{}, 4)
	s := New(time.UTC, clock.Fixed{At: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)},
		Job{Name: "accrual", Run: func(context.Context) error { fired <- struct{}{}; return nil }},
	)

	var mu sync.Mutex
	var waits []time.Duration
	ticks := make(chan time.Time)
	s.newTimer = func(d time.Duration) (<-chan time.Time, func() bool) {
		mu.Lock()
		waits = append(waits, d)
		mu.Unlock()
		return ticks, func() bool { return true }
	}

	s.Start()
	s.Start() // second start is a no-op
	ticks <- time.Now()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire")
	}

	s.Stop()
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, waits)
	assert.Equal(t, 14*time.Hour, waits[0])
}
