package http

import (
	"testing"
	"time"

	"microcredit-backoffice/internal/domain/loan"
)

func TestParseDueAt(t *testing.T) {
	cat := time.FixedZone("CAT", 2*3600)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-05-31", time.Date(2026, 5, 31, 21, 59, 59, 0, time.UTC)},
		{" 2026-05-31 ", time.Date(2026, 5, 31, 21, 59, 59, 0, time.UTC)},
		{"2026-05-31T12:00:00Z", time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)},
		{"2026-05-31T12:00:00+02:00", time.Date(2026, 5, 31, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := parseDueAt(tc.raw, cat)
		if err != nil {
			t.Fatalf("%q: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("%q: got %v want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "31/05/2026", "2026-05-31T12:00:00", "tomorrow"} {
		if _, err := parseDueAt(raw, cat); !loan.IsValidation(err) {
			t.Fatalf("%q: want validation error, got %v", raw, err)
		}
	}
}
