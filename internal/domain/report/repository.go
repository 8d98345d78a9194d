package report

import (
	"context"
	"time"
)

type Repository interface {
	MostBorrowed(ctx context.Context, limit int) ([]BookLoanCount, error)
	// Overdue lists active loans with due_date strictly before day.
	Overdue(ctx context.Context, day time.Time) ([]OverdueLoan, error)
	Availability(ctx context.Context) ([]Availability, error)
	NeverBorrowed(ctx context.Context) ([]Book, error)
	PopularAuthors(ctx context.Context, limit int) ([]AuthorLoanCount, error)
	PopularGenres(ctx context.Context, limit int) ([]GenreLoanCount, error)
	TopReaders(ctx context.Context, limit int) ([]MemberLoanCount, error)
	MemberHistory(ctx context.Context, memberID uint64) ([]HistoryEntry, error)
	PendingFines(ctx context.Context) ([]PendingFine, error)
	FineTotals(ctx context.Context) ([]FineTotal, error)
}
