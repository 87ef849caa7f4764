package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microcredit-backoffice/internal/domain/loan"
	"microcredit-backoffice/internal/domain/penalty"
)

type PenaltyRepository struct{ db *gorm.DB }

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository { return &PenaltyRepository{db: db} }

// CreateIfAbsent leans on ux_penalties_loan_kind_day: a concurrent insert of
// the same day turns into a no-op instead of a duplicate.
func (r *PenaltyRepository) CreateIfAbsent(ctx context.Context, p *penalty.Penalty) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "loan_id"}, {Name: "kind"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return false, translate(res.Error, loan.ErrPenaltyNotFound)
	}
	return res.RowsAffected == 1, nil
}

func (r *PenaltyRepository) ExistsForDay(ctx context.Context, loanNumericID uint64, kind penalty.Kind, day string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&penalty.Penalty{}).
		Where("loan_id = ? AND kind = ? AND day = ?", loanNumericID, kind, day).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *PenaltyRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]penalty.Penalty, error) {
	var out []penalty.Penalty
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("day ASC, elapsed_days ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PenaltyRepository) ListByLoanIDs(ctx context.Context, loanNumericIDs []uint64) ([]penalty.Penalty, error) {
	var out []penalty.Penalty
	if len(loanNumericIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanNumericIDs).
		Order("loan_id ASC, day ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PenaltyRepository) CountByLoan(ctx context.Context, loanNumericID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&penalty.Penalty{}).Where("loan_id = ?", loanNumericID).Count(&n).Error
	return n, err
}

// Save writes status and notes back. Penalties are never re-keyed.
func (r *PenaltyRepository) Save(ctx context.Context, p *penalty.Penalty) error {
	if p.ID == 0 {
		return loan.ErrPenaltyNotFound
	}
	res := r.db.WithContext(ctx).Model(p).Updates(map[string]any{
		"status": p.Status,
		"notes":  p.Notes,
	})
	if res.Error != nil {
		return translate(res.Error, loan.ErrPenaltyNotFound)
	}
	if res.RowsAffected == 0 {
		return loan.ErrPenaltyNotFound
	}
	return nil
}
