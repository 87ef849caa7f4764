package clock

import "time"

// Clock is the source of "now" for everything that reasons about due dates.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Used by tests and by one-shot
// backfills that must run "as of" a given date.
type Fixed struct{ At time.Time }

func (f Fixed) Now() time.Time { return f.At }

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
