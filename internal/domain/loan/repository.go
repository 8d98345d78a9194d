package loan

import (
	"context"
	"time"
)

// Filter narrows List. Zero values mean "no constraint".
type Filter struct {
	MemberID uint64
	CopyID   uint64
	// OnlyActive and OnlyReturned are mutually exclusive
	OnlyActive   bool
	OnlyReturned bool
	// Bounds on due_date: DueBefore is exclusive, DueOnOrAfter inclusive
	DueBefore    *time.Time
	DueOnOrAfter *time.Time
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// Locks the loan row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
	// MarkReturned sets returned_at only if it is still null; false means the
	// loan was already returned.
	MarkReturned(ctx context.Context, id uint64, at time.Time) (bool, error)
	Count(ctx context.Context, f Filter) (int64, error)
	CountActiveByCopy(ctx context.Context, copyID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
}
