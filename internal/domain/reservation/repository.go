package reservation

import (
	"context"
	"time"
)

type Filter struct {
	Status   Status
	MemberID uint64
	BookID   uint64
}

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id uint64) (*Reservation, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Reservation, error)
	List(ctx context.Context, f Filter) ([]Reservation, error)
	// UpdateStatus is conditional on the current status; false means the
	// reservation was no longer in `from`.
	UpdateStatus(ctx context.Context, id uint64, from, to Status) (bool, error)
	// FulfillForMember closes the member's active reservations on the book and
	// returns how many were closed.
	FulfillForMember(ctx context.Context, bookID, memberID uint64) (int64, error)
	// NotifyNext stamps notified_at on the oldest active, not yet notified
	// reservation for the book. It returns nil when there is none.
	NotifyNext(ctx context.Context, bookID uint64, at time.Time) (*Reservation, error)
	// Delete removes the reservations matching f. f must name a book or a member.
	Delete(ctx context.Context, f Filter) (int64, error)
}
