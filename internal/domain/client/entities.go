package client

import "context"

// Client is owned by the onboarding side of the back-office; the ledger only
// reads it to personalise messages and reports.
type Client struct {
	ID       uint64 `gorm:"column:id;primaryKey"`
	ClientID string `gorm:"column:client_id;size:32;uniqueIndex"`
	Name     string `gorm:"column:name;size:255"`
	Phone    string `gorm:"column:phone;size:32"`
	Email    string `gorm:"column:email;size:255"`
}

func (Client) TableName() string { return "clients" }

// Directory is a read-only lookup.
type Directory interface {
	Lookup(ctx context.Context, clientID string) (*Client, error)
}
