package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "microcredit-backoffice/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, loanDomain.ErrLoanNotFound)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return translate(r.db.WithContext(ctx).Save(l).Error, loanDomain.ErrLoanNotFound)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrLoanNotFound)
	}
	return &out, nil
}

// GetByLoanIDForUpdate issues SELECT ... FOR UPDATE. SQLite has no row locks
// and ignores the clause; its single writer serialises instead.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrLoanNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByClientID(ctx context.Context, clientID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("issued_at DESC, id DESC").
		Find(&out).Error
	return out, translate(err, loanDomain.ErrLoanNotFound)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, statuses ...loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	q := r.db.WithContext(ctx).Order("id ASC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&out).Error
	return out, translate(err, loanDomain.ErrLoanNotFound)
}

func (r *LoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status IN ? AND due_at < ?",
			[]loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusDelinquent}, now.UTC()).
		Order("due_at ASC, id ASC").
		Find(&out).Error
	return out, translate(err, loanDomain.ErrLoanNotFound)
}

func (r *LoanRepository) ListDueAfter(ctx context.Context, now time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_at > ?", loanDomain.StatusActive, now.UTC()).
		Order("due_at ASC, id ASC").
		Find(&out).Error
	return out, translate(err, loanDomain.ErrLoanNotFound)
}

// Delete is a soft delete; the row stays for audit.
func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	res := r.db.WithContext(ctx).Delete(l)
	if res.Error != nil {
		return translate(res.Error, loanDomain.ErrLoanNotFound)
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrLoanNotFound
	}
	return nil
}
