package mysql

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/domain/reservation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uint64) (*reservation.Reservation, error) {
	var out reservation.Reservation
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*reservation.Reservation, error) {
	var out reservation.Reservation
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) filtered(ctx context.Context, f reservation.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&reservation.Reservation{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MemberID != 0 {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.BookID != 0 {
		q = q.Where("book_id = ?", f.BookID)
	}
	return q
}

func (r *ReservationRepository) List(ctx context.Context, f reservation.Filter) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	err := r.filtered(ctx, f).Order("reserved_at ASC, id ASC").Find(&out).Error
	return out, err
}

var errUnscopedDelete = errors.New("reservation delete needs a book or member")

func (r *ReservationRepository) Delete(ctx context.Context, f reservation.Filter) (int64, error) {
	if f.BookID == 0 && f.MemberID == 0 {
		return 0, errUnscopedDelete
	}
	res := r.filtered(ctx, f).Delete(&reservation.Reservation{})
	return res.RowsAffected, res.Error
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uint64, from, to reservation.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&reservation.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ReservationRepository) FulfillForMember(ctx context.Context, bookID, memberID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&reservation.Reservation{}).
		Where("book_id = ? AND member_id = ? AND status = ?", bookID, memberID, reservation.StatusActive).
		Update("status", reservation.StatusFulfilled)
	return res.RowsAffected, res.Error
}

func (r *ReservationRepository) NotifyNext(ctx context.Context, bookID uint64, at time.Time) (*reservation.Reservation, error) {
	var next reservation.Reservation
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND status = ? AND notified_at IS NULL", bookID, reservation.StatusActive).
		Order("reserved_at ASC, id ASC").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&reservation.Reservation{}).
		Where("id = ?", next.ID).
		Update("notified_at", at).Error; err != nil {
		return nil, err
	}
	next.NotifiedAt = &at
	return &next, nil
}
