package db

import (
	"gorm.io/gorm"

	"microcredit-backoffice/internal/domain/client"
	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/notification"
	"microcredit-backoffice/internal/domain/payment"
	"microcredit-backoffice/internal/domain/penalty"
)

// Models lists every table the service owns or reads, in dependency order.
func Models() []any {
	return []any{
		&client.Client{},
		&loan.Loan{},
		&payment.Payment{},
		&penalty.Penalty{},
		&notification.Notification{},
	}
}

// Migrate creates or updates the schema, including the unique
// (loan_id, kind, day) index on penalties.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
