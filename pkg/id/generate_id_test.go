package id

import (
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/rs/xid"
)

// Ledger ids are validated by the HTTP layer with this exact shape.
var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := NewID32()
		if !reHex32.MatchString(got) {
			t.Fatalf("not 32-char lowercase hex: %q", got)
		}
		b, err := hex.DecodeString(got)
		if err != nil || len(b) != 16 {
			t.Fatalf("decode %q: %d bytes, err=%v", got, len(b), err)
		}
	}
}

func TestNewID32_NoCollisionsAcrossABatch(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := NewID32()
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id after %d draws: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}

func TestNewRunID_SortableAndUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("run id length: %q %q", a, b)
	}
	if a == b {
		t.Fatalf("run ids must differ: %q", a)
	}
	if a > b {
		t.Fatalf("run ids must sort by creation: %q > %q", a, b)
	}
}

func TestNewRunID_CarriesCreationTime(t *testing.T) {
	parsed, err := xid.FromString(NewRunID())
	if err != nil {
		t.Fatalf("parse run id: %v", err)
	}
	if parsed.Time().IsZero() {
		t.Fatalf("run id has no timestamp")
	}
}
