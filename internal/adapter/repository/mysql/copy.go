package mysql

import (
	"context"

	"library-backend/internal/domain/bookcopy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CopyRepository struct{ db *gorm.DB }

func NewCopyRepository(db *gorm.DB) *CopyRepository { return &CopyRepository{db: db} }

func (r *CopyRepository) Create(ctx context.Context, c *bookcopy.Copy) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CopyRepository) GetByID(ctx context.Context, id uint64) (*bookcopy.Copy, error) {
	var out bookcopy.Copy
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CopyRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*bookcopy.Copy, error) {
	var out bookcopy.Copy
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *CopyRepository) List(ctx context.Context, f bookcopy.Filter) ([]bookcopy.Copy, error) {
	q := r.db.WithContext(ctx).Model(&bookcopy.Copy{})
	if f.BookID != 0 {
		q = q.Where("book_id = ?", f.BookID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []bookcopy.Copy
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *CopyRepository) CountByBook(ctx context.Context, bookID uint64) (map[bookcopy.Status]int64, error) {
	var rows []struct {
		Status bookcopy.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&bookcopy.Copy{}).
		Select("status, COUNT(*) AS n").
		Where("book_id = ?", bookID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[bookcopy.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *CopyRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookcopy.Copy{}).Error
}

// TransitionStatus is a compare-and-set on copies.status. Two transactions
// racing for the same copy cannot both see RowsAffected == 1.
func (r *CopyRepository) TransitionStatus(ctx context.Context, id uint64, from, to bookcopy.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&bookcopy.Copy{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
