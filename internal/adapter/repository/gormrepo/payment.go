package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/payment"
)

// PaymentRepository only inserts and reads; payments are immutable.
type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, loan.ErrLoanNotFound)
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]payment.Payment, error) {
	var out []payment.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("paid_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]payment.Payment, error) {
	var out []payment.Payment
	if len(loanNumericIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanNumericIDs).
		Order("loan_id ASC, paid_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) CountByLoan(ctx context.Context, loanNumericID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&payment.Payment{}).Where("loan_id = ?", loanNumericID).Count(&n).Error
	return n, err
}
