package fine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/uow"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid fine status")

type Usecase struct {
	repo fine.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(r fine.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: r, uow: tx, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Pay settles a pending fine. Paying twice is a conflict, not a no-op.
func (u *Usecase) Pay(ctx context.Context, fineID uint64) (*fine.Fine, error) {
	var paid *fine.Fine
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Fines.GetByIDForUpdate(ctx, fineID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fine.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock fine %d: %w", fineID, err)
		}
		if f.Status == fine.StatusPaid {
			return fine.ErrAlreadyPaid
		}

		at := u.now()
		ok, err := r.Fines.MarkPaid(ctx, f.ID, at)
		if err != nil {
			return fmt.Errorf("mark fine %d paid: %w", f.ID, err)
		}
		if !ok {
			return fine.ErrAlreadyPaid
		}
		f.Status = fine.StatusPaid
		f.PaidAt = &at
		paid = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("fine_id", paid.ID).Uint64("loan_id", paid.LoanID).Float64("amount", paid.Amount).Msg("fine: paid")
	return paid, nil
}

func (u *Usecase) Get(ctx context.Context, fineID uint64) (*fine.Fine, error) {
	f, err := u.repo.GetByID(ctx, fineID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fine.ErrNotFound
	}
	return f, err
}

func (u *Usecase) List(ctx context.Context, status string) ([]fine.Fine, error) {
	s := fine.Status(status)
	if s != "" && !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.repo.List(ctx, fine.Filter{Status: s})
}
