package reservationmock

import (
	"context"
	"time"

	domain "library-backend/internal/domain/reservation"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Reservation) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Reservation, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Reservation, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Reservation, error)
	UpdateStatusFn     func(ctx context.Context, id uint64, from, to domain.Status) (bool, error)
	FulfillForMemberFn func(ctx context.Context, bookID, memberID uint64) (int64, error)
	NotifyNextFn       func(ctx context.Context, bookID uint64, at time.Time) (*domain.Reservation, error)
	DeleteFn           func(ctx context.Context, f domain.Filter) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Reservation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Reservation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Reservation, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Reservation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, from, to domain.Status) (bool, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, from, to)
	}
	return true, nil
}

// FulfillForMember and NotifyNext default to "nothing to do".
func (m *Repo) FulfillForMember(ctx context.Context, bookID, memberID uint64) (int64, error) {
	if m.FulfillForMemberFn != nil {
		return m.FulfillForMemberFn(ctx, bookID, memberID)
	}
	return 0, nil
}

func (m *Repo) NotifyNext(ctx context.Context, bookID uint64, at time.Time) (*domain.Reservation, error) {
	if m.NotifyNextFn != nil {
		return m.NotifyNextFn(ctx, bookID, at)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, f domain.Filter) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, f)
	}
	return 0, nil
}
