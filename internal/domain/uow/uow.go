package uow

import (
	"context"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"
)

// Repos are bound to one transaction; never mix them with repositories
// opened on the root connection inside the same callback.
type Repos struct {
	Books        book.Repository
	Copies       bookcopy.Repository
	Members      member.Repository
	Loans        loan.Repository
	Fines        fine.Repository
	Reservations reservation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan first, then pass it in; a missing loan is loan.ErrNotFound
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
