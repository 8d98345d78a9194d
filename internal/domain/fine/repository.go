package fine

import (
	"context"
	"time"
)

type Filter struct {
	Status Status
	LoanID uint64
}

type Repository interface {
	Create(ctx context.Context, f *Fine) error
	GetByID(ctx context.Context, id uint64) (*Fine, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Fine, error)
	GetByLoanID(ctx context.Context, loanID uint64) (*Fine, error)
	List(ctx context.Context, f Filter) ([]Fine, error)
	// MarkPaid flips a pending fine to paid; false means it was not pending.
	MarkPaid(ctx context.Context, id uint64, at time.Time) (bool, error)
	DeleteByLoanID(ctx context.Context, loanID uint64) error
}
