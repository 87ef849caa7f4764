package gormrepo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	loanDomain "microcredit-backoffice/internal/domain/loan"
	infradb "microcredit-backoffice/internal/infrastructure/db"
	"microcredit-backoffice/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the real schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infradb.OpenGormWithDialector(sqlite.Open(":memory:"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func makeLoan(clientID string, due time.Time, status loanDomain.Status) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:          id.NewID32(),
		ClientID:        clientID,
		Principal:       decimal.NewFromInt(10000),
		IssuedAt:        due.AddDate(0, -1, 0),
		DueAt:           due,
		Status:          status,
		StatusUpdatedAt: baseTime,
	}
}

func mustCreateLoan(t *testing.T, r *LoanRepository, l *loanDomain.Loan) *loanDomain.Loan {
	t.Helper()
	if err := r.Create(context.Background(), l); err != nil {
		t.Fatalf("Create loan: %v", err)
	}
	return l
}
