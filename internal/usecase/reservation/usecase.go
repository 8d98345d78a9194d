// Package reservation lets members queue for a book whose copies are all out.
// Reservations are fulfilled by the loan lifecycle when the member borrows a
// copy of the book, and flagged as notified when a copy comes back.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"
	"library-backend/internal/domain/uow"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid reservation status")

type CreateInput struct {
	BookID   uint64
	MemberID uint64
}

type ListInput struct {
	Status   string
	MemberID uint64
	BookID   uint64
}

type Usecase struct {
	repo reservation.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(r reservation.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: r, uow: tx, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*reservation.Reservation, error) {
	var out *reservation.Reservation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Books.GetByID(ctx, in.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrNotFound
			}
			return fmt.Errorf("get book %d: %w", in.BookID, err)
		}
		m, err := r.Members.GetByID(ctx, in.MemberID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get member %d: %w", in.MemberID, err)
		}
		if !m.CanBorrow() {
			return member.ErrNotActive
		}

		res := &reservation.Reservation{
			BookID:     in.BookID,
			MemberID:   in.MemberID,
			ReservedAt: u.now(),
			Status:     reservation.StatusActive,
		}
		if err := r.Reservations.Create(ctx, res); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("reservation_id", out.ID).Uint64("book_id", out.BookID).Uint64("member_id", out.MemberID).Msg("reservation: created")
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*reservation.Reservation, error) {
	res, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reservation.ErrNotFound
	}
	return res, err
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]reservation.Reservation, error) {
	s := reservation.Status(in.Status)
	if s != "" && !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.repo.List(ctx, reservation.Filter{Status: s, MemberID: in.MemberID, BookID: in.BookID})
}

// Cancel closes an active reservation. Cancelled and fulfilled ones are final.
func (u *Usecase) Cancel(ctx context.Context, id uint64) (*reservation.Reservation, error) {
	var out *reservation.Reservation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res, err := r.Reservations.GetByIDForUpdate(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock reservation %d: %w", id, err)
		}
		if res.Status != reservation.StatusActive {
			return reservation.ErrNotActive
		}
		ok, err := r.Reservations.UpdateStatus(ctx, id, reservation.StatusActive, reservation.StatusCancelled)
		if err != nil {
			return fmt.Errorf("cancel reservation %d: %w", id, err)
		}
		if !ok {
			return reservation.ErrNotActive
		}
		res.Status = reservation.StatusCancelled
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("reservation_id", id).Msg("reservation: cancelled")
	return out, nil
}
