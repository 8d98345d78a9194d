package mysql

import (
	"context"
	"time"

	"library-backend/internal/domain/fine"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FineRepository struct{ db *gorm.DB }

func NewFineRepository(db *gorm.DB) *FineRepository { return &FineRepository{db: db} }

func (r *FineRepository) Create(ctx context.Context, f *fine.Fine) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FineRepository) GetByID(ctx context.Context, id uint64) (*fine.Fine, error) {
	var out fine.Fine
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *FineRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*fine.Fine, error) {
	var out fine.Fine
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *FineRepository) GetByLoanID(ctx context.Context, loanID uint64) (*fine.Fine, error) {
	var out fine.Fine
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *FineRepository) List(ctx context.Context, f fine.Filter) ([]fine.Fine, error) {
	q := r.db.WithContext(ctx).Model(&fine.Fine{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.LoanID != 0 {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	var out []fine.Fine
	err := q.Order("generated_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *FineRepository) MarkPaid(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&fine.Fine{}).
		Where("id = ? AND status = ?", id, fine.StatusPending).
		Updates(map[string]any{"status": fine.StatusPaid, "paid_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *FineRepository) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).Where("loan_id = ?", loanID).Delete(&fine.Fine{}).Error
}
