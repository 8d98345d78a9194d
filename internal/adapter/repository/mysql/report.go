package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/report"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"   // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
)

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite3"
)

// ReportRepository runs the read-only aggregate queries. It shares the
// connection pool with gorm but builds SQL with goqu and scans with sqlx.
type ReportRepository struct {
	db      *sqlx.DB
	builder goqu.DialectWrapper
}

// NewReportRepository wraps an open pool. dialect is DialectMySQL or DialectSQLite.
func NewReportRepository(sqlDB *sql.DB, dialect string) *ReportRepository {
	return &ReportRepository{
		db:      sqlx.NewDb(sqlDB, dialect),
		builder: goqu.Dialect(dialect),
	}
}

var _ report.Repository = (*ReportRepository)(nil)

func (r *ReportRepository) selectInto(ctx context.Context, dest any, ds *goqu.SelectDataset) error {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build report query: %w", err)
	}
	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("run report query: %w", err)
	}
	return nil
}

func (r *ReportRepository) loansPerBook() *goqu.SelectDataset {
	return r.builder.
		From(goqu.T("books").As("b")).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.book_id").Eq(goqu.I("b.id")))).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.copy_id").Eq(goqu.I("c.id"))))
}

func (r *ReportRepository) MostBorrowed(ctx context.Context, limit int) ([]report.BookLoanCount, error) {
	ds := r.loansPerBook().
		Select(
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("b.isbn").As("isbn"),
			goqu.COUNT(goqu.I("l.id")).As("loan_count"),
		).
		GroupBy(goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.isbn")).
		Order(goqu.C("loan_count").Desc(), goqu.I("b.id").Asc()).
		Limit(uint(limit))

	out := []report.BookLoanCount{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) Overdue(ctx context.Context, day time.Time) ([]report.OverdueLoan, error) {
	ds := r.builder.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("l.copy_id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("c.book_id")))).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("l.member_id")))).
		Select(
			goqu.I("l.id").As("loan_id"),
			goqu.I("l.copy_id").As("copy_id"),
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("m.id").As("member_id"),
			goqu.I("m.first_name").As("first_name"),
			goqu.I("m.last_name").As("last_name"),
			goqu.I("m.email").As("email"),
			goqu.I("l.loaned_at").As("loaned_at"),
			goqu.I("l.due_date").As("due_date"),
		).
		Where(
			goqu.I("l.returned_at").IsNull(),
			goqu.I("l.due_date").Lt(day),
		).
		Order(goqu.I("l.due_date").Asc(), goqu.I("l.id").Asc())

	out := []report.OverdueLoan{}
	return out, r.selectInto(ctx, &out, ds)
}

func countStatus(s bookcopy.Status) exp.SQLFunctionExpression {
	return goqu.COALESCE(goqu.SUM(goqu.Case().When(goqu.I("c.status").Eq(string(s)), 1).Else(0)), 0)
}

func (r *ReportRepository) Availability(ctx context.Context) ([]report.Availability, error) {
	ds := r.builder.
		From(goqu.T("books").As("b")).
		LeftJoin(goqu.T("copies").As("c"), goqu.On(goqu.I("c.book_id").Eq(goqu.I("b.id")))).
		Select(
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.COUNT(goqu.I("c.id")).As("total"),
			countStatus(bookcopy.StatusAvailable).As("available"),
			countStatus(bookcopy.StatusLoaned).As("loaned"),
			countStatus(bookcopy.StatusMaintenance).As("maintenance"),
			countStatus(bookcopy.StatusLost).As("lost"),
		).
		GroupBy(goqu.I("b.id"), goqu.I("b.title")).
		Order(goqu.I("b.title").Asc(), goqu.I("b.id").Asc())

	out := []report.Availability{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) NeverBorrowed(ctx context.Context) ([]report.Book, error) {
	ds := r.builder.
		From(goqu.T("books").As("b")).
		LeftJoin(goqu.T("copies").As("c"), goqu.On(goqu.I("c.book_id").Eq(goqu.I("b.id")))).
		LeftJoin(goqu.T("loans").As("l"), goqu.On(goqu.I("l.copy_id").Eq(goqu.I("c.id")))).
		Select(
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("b.isbn").As("isbn"),
		).
		GroupBy(goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.isbn")).
		Having(goqu.COUNT(goqu.I("l.id")).Eq(0)).
		Order(goqu.I("b.title").Asc(), goqu.I("b.id").Asc())

	out := []report.Book{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) PopularAuthors(ctx context.Context, limit int) ([]report.AuthorLoanCount, error) {
	ds := r.builder.
		From(goqu.T("authors").As("a")).
		Join(goqu.T("book_authors").As("ba"), goqu.On(goqu.I("ba.author_id").Eq(goqu.I("a.id")))).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.book_id").Eq(goqu.I("ba.book_id")))).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.copy_id").Eq(goqu.I("c.id")))).
		Select(
			goqu.I("a.id").As("author_id"),
			goqu.I("a.first_name").As("first_name"),
			goqu.I("a.last_name").As("last_name"),
			goqu.COUNT(goqu.I("l.id")).As("loan_count"),
		).
		GroupBy(goqu.I("a.id"), goqu.I("a.first_name"), goqu.I("a.last_name")).
		Order(goqu.C("loan_count").Desc(), goqu.I("a.id").Asc()).
		Limit(uint(limit))

	out := []report.AuthorLoanCount{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) PopularGenres(ctx context.Context, limit int) ([]report.GenreLoanCount, error) {
	ds := r.builder.
		From(goqu.T("genres").As("g")).
		Join(goqu.T("book_genres").As("bg"), goqu.On(goqu.I("bg.genre_id").Eq(goqu.I("g.id")))).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.book_id").Eq(goqu.I("bg.book_id")))).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.copy_id").Eq(goqu.I("c.id")))).
		Select(
			goqu.I("g.id").As("genre_id"),
			goqu.I("g.name").As("name"),
			goqu.COUNT(goqu.I("l.id")).As("loan_count"),
		).
		GroupBy(goqu.I("g.id"), goqu.I("g.name")).
		Order(goqu.C("loan_count").Desc(), goqu.I("g.id").Asc()).
		Limit(uint(limit))

	out := []report.GenreLoanCount{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) TopReaders(ctx context.Context, limit int) ([]report.MemberLoanCount, error) {
	ds := r.builder.
		From(goqu.T("members").As("m")).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.member_id").Eq(goqu.I("m.id")))).
		Select(
			goqu.I("m.id").As("member_id"),
			goqu.I("m.first_name").As("first_name"),
			goqu.I("m.last_name").As("last_name"),
			goqu.I("m.email").As("email"),
			goqu.COUNT(goqu.I("l.id")).As("loan_count"),
		).
		GroupBy(goqu.I("m.id"), goqu.I("m.first_name"), goqu.I("m.last_name"), goqu.I("m.email")).
		Order(goqu.C("loan_count").Desc(), goqu.I("m.id").Asc()).
		Limit(uint(limit))

	out := []report.MemberLoanCount{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) MemberHistory(ctx context.Context, memberID uint64) ([]report.HistoryEntry, error) {
	ds := r.builder.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("l.copy_id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("c.book_id")))).
		LeftJoin(goqu.T("fines").As("f"), goqu.On(goqu.I("f.loan_id").Eq(goqu.I("l.id")))).
		Select(
			goqu.I("l.id").As("loan_id"),
			goqu.I("l.copy_id").As("copy_id"),
			goqu.I("b.id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("l.loaned_at").As("loaned_at"),
			goqu.I("l.due_date").As("due_date"),
			goqu.I("l.returned_at").As("returned_at"),
			goqu.I("f.id").As("fine_id"),
			goqu.I("f.amount").As("fine_amount"),
			goqu.I("f.status").As("fine_status"),
			goqu.I("f.paid_at").As("fine_paid_at"),
		).
		Where(goqu.I("l.member_id").Eq(memberID)).
		Order(goqu.I("l.loaned_at").Desc(), goqu.I("l.id").Desc())

	out := []report.HistoryEntry{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) PendingFines(ctx context.Context) ([]report.PendingFine, error) {
	ds := r.builder.
		From(goqu.T("fines").As("f")).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("f.loan_id")))).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("l.member_id")))).
		Select(
			goqu.I("f.id").As("fine_id"),
			goqu.I("f.loan_id").As("loan_id"),
			goqu.I("m.id").As("member_id"),
			goqu.I("m.first_name").As("first_name"),
			goqu.I("m.last_name").As("last_name"),
			goqu.I("m.email").As("email"),
			goqu.I("f.amount").As("amount"),
			goqu.I("f.generated_at").As("generated_at"),
		).
		Where(goqu.I("f.status").Eq(string(fine.StatusPending))).
		Order(goqu.I("f.generated_at").Asc(), goqu.I("f.id").Asc())

	out := []report.PendingFine{}
	return out, r.selectInto(ctx, &out, ds)
}

func (r *ReportRepository) FineTotals(ctx context.Context) ([]report.FineTotal, error) {
	ds := r.builder.
		From(goqu.T("fines")).
		Select(
			goqu.C("status"),
			goqu.COUNT(goqu.Star()).As("fine_count"),
			goqu.COALESCE(goqu.SUM(goqu.C("amount")), 0).As("total"),
		).
		GroupBy(goqu.C("status")).
		Order(goqu.C("status").Asc())

	out := []report.FineTotal{}
	return out, r.selectInto(ctx, &out, ds)
}
