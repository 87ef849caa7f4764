package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/xid"
)

// NewID32 returns the 32 lowercase hex characters used as public ids for
// loans, payments, penalties and notifications.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewRunID returns a sortable 20-char id for batch job runs.
func NewRunID() string {
	return xid.New().String()
}
