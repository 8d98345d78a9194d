package mysql

import (
	"context"
	"time"

	loanDomain "library-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) filtered(ctx context.Context, f loanDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.MemberID != 0 {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.CopyID != 0 {
		q = q.Where("copy_id = ?", f.CopyID)
	}
	switch {
	case f.OnlyActive:
		q = q.Where("returned_at IS NULL")
	case f.OnlyReturned:
		q = q.Where("returned_at IS NOT NULL")
	}
	if f.DueBefore != nil {
		q = q.Where("due_date < ?", *f.DueBefore)
	}
	if f.DueOnOrAfter != nil {
		q = q.Where("due_date >= ?", *f.DueOnOrAfter)
	}
	return q
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.filtered(ctx, f).Order("loaned_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) Count(ctx context.Context, f loanDomain.Filter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (r *LoanRepository) MarkReturned(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND returned_at IS NULL", id).
		Update("returned_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LoanRepository) CountActiveByCopy(ctx context.Context, copyID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("copy_id = ? AND returned_at IS NULL", copyID).
		Count(&n).Error
	return n, err
}

func (r *LoanRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&loanDomain.Loan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
