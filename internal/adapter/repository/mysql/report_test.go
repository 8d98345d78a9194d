package mysql

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reportFixture struct {
	dune, emma, ulysses *book.Book
	ada, bob            *member.Member
	overdueLoan         *loan.Loan
	lateFine            *fine.Fine
}

// seedReports builds a small library:
//   - Dune (Herbert, Sci-Fi): 2 copies, 3 loans (one still out and overdue)
//   - Emma (Austen, Classic): 1 copy in maintenance, 1 returned loan with a paid fine
//   - Ulysses: 1 copy, never borrowed
func seedReports(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()
	ctx := context.Background()
	books := NewBookRepository(db)

	mk := func(title, isbn, first, last, genre string) *book.Book {
		p, err := books.FindOrCreatePublisher(ctx, "Pub")
		require.NoError(t, err)
		a, err := books.FindOrCreateAuthor(ctx, first, last)
		require.NoError(t, err)
		g, err := books.FindOrCreateGenre(ctx, genre)
		require.NoError(t, err)
		b := &book.Book{Title: title, ISBN: isbn, PublisherID: p.ID, Authors: []book.Author{*a}, Genres: []book.Genre{*g}}
		require.NoError(t, books.Create(ctx, b))
		return b
	}

	f := reportFixture{
		dune:    mk("Dune", "111", "Frank", "Herbert", "Sci-Fi"),
		emma:    mk("Emma", "222", "Jane", "Austen", "Classic"),
		ulysses: mk("Ulysses", "333", "James", "Joyce", "Classic"),
		ada:     seedMember(t, db, "ada@x.io", member.StatusActive),
		bob:     seedMember(t, db, "bob@x.io", member.StatusActive),
	}

	d1 := seedCopy(t, db, f.dune.ID, bookcopy.StatusLoaned)
	d2 := seedCopy(t, db, f.dune.ID, bookcopy.StatusAvailable)
	e1 := seedCopy(t, db, f.emma.ID, bookcopy.StatusMaintenance)
	seedCopy(t, db, f.ulysses.ID, bookcopy.StatusAvailable)

	returned := func(l *loan.Loan, at time.Time) *loan.Loan { l.ReturnedAt = &at; return l }
	f.overdueLoan = makeLoan(d1.ID, f.ada.ID, day(2024, 1, 10))
	emmaLoan := returned(makeLoan(e1.ID, f.bob.ID, day(2024, 1, 5)), day(2024, 1, 8))
	loans := []*loan.Loan{
		f.overdueLoan,
		returned(makeLoan(d2.ID, f.ada.ID, day(2023, 12, 1)), day(2023, 11, 30)),
		returned(makeLoan(d2.ID, f.bob.ID, day(2023, 12, 20)), day(2023, 12, 19)),
		emmaLoan,
	}
	for _, l := range loans {
		require.NoError(t, db.Create(l).Error)
	}

	paidAt := day(2024, 1, 9)
	f.lateFine = &fine.Fine{LoanID: emmaLoan.ID, Amount: 3, GeneratedAt: day(2024, 1, 8), Status: fine.StatusPaid, PaidAt: &paidAt}
	require.NoError(t, db.Create(f.lateFine).Error)
	require.NoError(t, db.Create(&fine.Fine{LoanID: loans[1].ID, Amount: 1.5, GeneratedAt: day(2023, 11, 30), Status: fine.StatusPending}).Error)
	return f
}

func openReportRepo(t *testing.T) (*ReportRepository, reportFixture) {
	t.Helper()
	db := openTestDB(t)
	f := seedReports(t, db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return NewReportRepository(sqlDB, DialectSQLite), f
}

func TestReport_MostBorrowed(t *testing.T) {
	repo, f := openReportRepo(t)

	got, err := repo.MostBorrowed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, f.dune.ID, got[0].BookID)
	assert.EqualValues(t, 3, got[0].LoanCount)
	assert.Equal(t, "Emma", got[1].Title)

	top1, err := repo.MostBorrowed(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top1, 1)
}

func TestReport_Overdue(t *testing.T) {
	repo, f := openReportRepo(t)
	ctx := context.Background()

	got, err := repo.Overdue(ctx, day(2024, 1, 15))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.overdueLoan.ID, got[0].LoanID)
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "ada@x.io", got[0].MemberEmail)
	assert.True(t, got[0].DueDate.Equal(day(2024, 1, 10)))

	// due date itself is not overdue yet
	got, err = repo.Overdue(ctx, day(2024, 1, 10))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReport_AvailabilityAndNeverBorrowed(t *testing.T) {
	repo, f := openReportRepo(t)
	ctx := context.Background()

	avail, err := repo.Availability(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 3)
	byTitle := map[string]int{}
	for i, a := range avail {
		byTitle[a.Title] = i
	}
	dune := avail[byTitle["Dune"]]
	assert.EqualValues(t, 2, dune.Total)
	assert.EqualValues(t, 1, dune.Available)
	assert.EqualValues(t, 1, dune.Loaned)
	assert.EqualValues(t, 1, avail[byTitle["Emma"]].Maintenance)

	never, err := repo.NeverBorrowed(ctx)
	require.NoError(t, err)
	require.Len(t, never, 1)
	assert.Equal(t, f.ulysses.ID, never[0].BookID)
}

func TestReport_Popularity(t *testing.T) {
	repo, f := openReportRepo(t)
	ctx := context.Background()

	authors, err := repo.PopularAuthors(ctx, 5)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Herbert", authors[0].LastName)
	assert.EqualValues(t, 3, authors[0].LoanCount)

	genres, err := repo.PopularGenres(ctx, 5)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Sci-Fi", genres[0].Name)

	readers, err := repo.TopReaders(ctx, 5)
	require.NoError(t, err)
	require.Len(t, readers, 2)
	assert.EqualValues(t, 2, readers[0].LoanCount)
	assert.Equal(t, f.ada.ID, readers[0].MemberID)
}

func TestReport_MemberHistory(t *testing.T) {
	repo, f := openReportRepo(t)

	got, err := repo.MemberHistory(context.Background(), f.bob.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	var withFine int
	for _, h := range got {
		if h.FineID == nil {
			continue
		}
		withFine++
		assert.Equal(t, "Emma", h.Title)
		require.NotNil(t, h.FineAmount)
		assert.InDelta(t, 3.0, *h.FineAmount, 1e-9)
		require.NotNil(t, h.FineStatus)
		assert.Equal(t, string(fine.StatusPaid), *h.FineStatus)
		require.NotNil(t, h.ReturnedAt)
	}
	assert.Equal(t, 1, withFine)

	none, err := repo.MemberHistory(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReport_Fines(t *testing.T) {
	repo, f := openReportRepo(t)
	ctx := context.Background()

	pending, err := repo.PendingFines(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.ada.ID, pending[0].MemberID)
	assert.InDelta(t, 1.5, pending[0].Amount, 1e-9)

	totals, err := repo.FineTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "paid", totals[0].Status)
	assert.EqualValues(t, 1, totals[0].Count)
	assert.InDelta(t, 3.0, totals[0].Total, 1e-9)
	assert.Equal(t, "pending", totals[1].Status)
}
