package ledger

import (
	"time"

	"microcredit-backoffice/internal/domain/penalty"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from from to to, as seen in loc.
// Negative when to is earlier. DST shifts do not affect the count.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	f, t := from.In(loc), to.In(loc)
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu) / (24 * time.Hour))
}

// DayKey is the storage key of t's calendar day.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(penalty.DayLayout)
}

// OverdueDay is one calendar day a loan spent past its due date.
type OverdueDay struct {
	Elapsed int // 1 for the day after the due date
	Date    time.Time
	Key     string
}

// OverdueDays lists every day from the day after due through today,
// inclusive. It is empty when today is not after the due day.
func OverdueDays(due, today time.Time, loc *time.Location) []OverdueDay {
	n := DaysBetween(due, today, loc)
	if n <= 0 {
		return nil
	}
	start := StartOfDay(due, loc)
	out := make([]OverdueDay, 0, n)
	for i := 1; i <= n; i++ {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, loc)
		out = append(out, OverdueDay{Elapsed: i, Date: d, Key: d.Format(penalty.DayLayout)})
	}
	return out
}
