package reportmock

import (
	"context"
	"time"

	domain "library-backend/internal/domain/report"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock of report.Repository. Unset queries return
// context.Canceled.
type Repo struct {
	MostBorrowedFn   func(ctx context.Context, limit int) ([]domain.BookLoanCount, error)
	OverdueFn        func(ctx context.Context, day time.Time) ([]domain.OverdueLoan, error)
	AvailabilityFn   func(ctx context.Context) ([]domain.Availability, error)
	NeverBorrowedFn  func(ctx context.Context) ([]domain.Book, error)
	PopularAuthorsFn func(ctx context.Context, limit int) ([]domain.AuthorLoanCount, error)
	PopularGenresFn  func(ctx context.Context, limit int) ([]domain.GenreLoanCount, error)
	TopReadersFn     func(ctx context.Context, limit int) ([]domain.MemberLoanCount, error)
	MemberHistoryFn  func(ctx context.Context, memberID uint64) ([]domain.HistoryEntry, error)
	PendingFinesFn   func(ctx context.Context) ([]domain.PendingFine, error)
	FineTotalsFn     func(ctx context.Context) ([]domain.FineTotal, error)
}

func (m *Repo) MostBorrowed(ctx context.Context, limit int) ([]domain.BookLoanCount, error) {
	if m.MostBorrowedFn != nil {
		return m.MostBorrowedFn(ctx, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Overdue(ctx context.Context, day time.Time) ([]domain.OverdueLoan, error) {
	if m.OverdueFn != nil {
		return m.OverdueFn(ctx, day)
	}
	return nil, context.Canceled
}

func (m *Repo) Availability(ctx context.Context) ([]domain.Availability, error) {
	if m.AvailabilityFn != nil {
		return m.AvailabilityFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) NeverBorrowed(ctx context.Context) ([]domain.Book, error) {
	if m.NeverBorrowedFn != nil {
		return m.NeverBorrowedFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) PopularAuthors(ctx context.Context, limit int) ([]domain.AuthorLoanCount, error) {
	if m.PopularAuthorsFn != nil {
		return m.PopularAuthorsFn(ctx, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) PopularGenres(ctx context.Context, limit int) ([]domain.GenreLoanCount, error) {
	if m.PopularGenresFn != nil {
		return m.PopularGenresFn(ctx, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) TopReaders(ctx context.Context, limit int) ([]domain.MemberLoanCount, error) {
	if m.TopReadersFn != nil {
		return m.TopReadersFn(ctx, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) MemberHistory(ctx context.Context, memberID uint64) ([]domain.HistoryEntry, error) {
	if m.MemberHistoryFn != nil {
		return m.MemberHistoryFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) PendingFines(ctx context.Context) ([]domain.PendingFine, error) {
	if m.PendingFinesFn != nil {
		return m.PendingFinesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) FineTotals(ctx context.Context) ([]domain.FineTotal, error) {
	if m.FineTotalsFn != nil {
		return m.FineTotalsFn(ctx)
	}
	return nil, context.Canceled
}
