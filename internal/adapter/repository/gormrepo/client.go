package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"microcredit-backoffice/internal/domain/client"
)

// ClientDirectory reads the clients table owned by onboarding.
type ClientDirectory struct{ db *gorm.DB }

func NewClientDirectory(db *gorm.DB) *ClientDirectory { return &ClientDirectory{db: db} }

// Lookup returns (nil, nil) for an unknown client.
func (d *ClientDirectory) Lookup(ctx context.Context, clientID string) (*client.Client, error) {
	var out client.Client
	err := d.db.WithContext(ctx).Where("client_id = ?", clientID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
