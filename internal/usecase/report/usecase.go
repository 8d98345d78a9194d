// Package report serves the read-only circulation reports. Aggregation runs
// in the database; the overdue projection and the derived loan status are
// computed here so every dialect reports the same numbers. Results can be
// cached for a short TTL.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/report"
	"library-backend/pkg/calendar"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

// Cache stores JSON-serialisable report results. Get reports a miss with
// false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Usecase struct {
	repo    report.Repository
	members member.Repository
	policy  fine.Policy
	cache   Cache
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithCache enables cache-aside for every report. A zero ttl disables it.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(u *Usecase) {
		if c != nil && ttl > 0 {
			u.cache, u.ttl = c, ttl
		}
	}
}

func NewUsecase(r report.Repository, members member.Repository, policy fine.Policy, opts ...Option) *Usecase {
	u := &Usecase{
		repo:    r,
		members: members,
		policy:  policy,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func normLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

// cached runs load through the cache when one is configured. Cache failures
// are logged and never fail the report.
func cached[T any](ctx context.Context, u *Usecase, key string, load func() (T, error)) (T, error) {
	if u.cache == nil {
		return load()
	}
	var hit T
	ok, err := u.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report: cache read failed")
	} else if ok {
		return hit, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if err := u.cache.Set(ctx, key, v, u.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report: cache write failed")
	}
	return v, nil
}

func (u *Usecase) MostBorrowed(ctx context.Context, limit int) ([]report.BookLoanCount, error) {
	limit = normLimit(limit)
	return cached(ctx, u, fmt.Sprintf("report:most-borrowed:%d", limit), func() ([]report.BookLoanCount, error) {
		return u.repo.MostBorrowed(ctx, limit)
	})
}

func (u *Usecase) today() time.Time { return calendar.Date(u.now(), u.policy.Location) }

func (u *Usecase) overdueKey(day time.Time) string {
	return "report:overdue:" + day.Format(time.DateOnly)
}

// Overdue lists unreturned loans past their due date with the fine they
// would incur if returned now. Nothing is written.
func (u *Usecase) Overdue(ctx context.Context) ([]report.OverdueLoan, error) {
	day := u.today()
	return cached(ctx, u, u.overdueKey(day), func() ([]report.OverdueLoan, error) {
		return u.overdue(ctx, day)
	})
}

func (u *Usecase) overdue(ctx context.Context, day time.Time) ([]report.OverdueLoan, error) {
	rows, err := u.repo.Overdue(ctx, day)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i := range rows {
		a := u.policy.Project(rows[i].DueDate, now)
		rows[i].OverdueDays = a.OverdueDays
		rows[i].ProjectedFine = a.Amount
	}
	return rows, nil
}

// RefreshOverdue recomputes today's overdue report, bypassing any cached
// copy, and primes the cache with it. It returns the number of overdue loans.
func (u *Usecase) RefreshOverdue(ctx context.Context) (int, error) {
	day := u.today()
	rows, err := u.overdue(ctx, day)
	if err != nil {
		return 0, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, u.overdueKey(day), rows, u.ttl); err != nil {
			log.Warn().Err(err).Msg("report: cache write failed")
		}
	}
	var total float64
	for _, r := range rows {
		total += r.ProjectedFine
	}
	log.Info().Int("overdue", len(rows)).Float64("projected_fines", total).Msg("report: overdue refreshed")
	return len(rows), nil
}

func (u *Usecase) Availability(ctx context.Context) ([]report.Availability, error) {
	return cached(ctx, u, "report:availability", func() ([]report.Availability, error) {
		return u.repo.Availability(ctx)
	})
}

func (u *Usecase) NeverBorrowed(ctx context.Context) ([]report.Book, error) {
	return cached(ctx, u, "report:never-borrowed", func() ([]report.Book, error) {
		return u.repo.NeverBorrowed(ctx)
	})
}

func (u *Usecase) PopularAuthors(ctx context.Context, limit int) ([]report.AuthorLoanCount, error) {
	limit = normLimit(limit)
	return cached(ctx, u, fmt.Sprintf("report:popular-authors:%d", limit), func() ([]report.AuthorLoanCount, error) {
		return u.repo.PopularAuthors(ctx, limit)
	})
}

func (u *Usecase) PopularGenres(ctx context.Context, limit int) ([]report.GenreLoanCount, error) {
	limit = normLimit(limit)
	return cached(ctx, u, fmt.Sprintf("report:popular-genres:%d", limit), func() ([]report.GenreLoanCount, error) {
		return u.repo.PopularGenres(ctx, limit)
	})
}

func (u *Usecase) TopReaders(ctx context.Context, limit int) ([]report.MemberLoanCount, error) {
	limit = normLimit(limit)
	return cached(ctx, u, fmt.Sprintf("report:top-readers:%d", limit), func() ([]report.MemberLoanCount, error) {
		return u.repo.TopReaders(ctx, limit)
	})
}

// MemberHistory is not cached: it is read right after a member's own
// borrow or return and has to reflect it.
func (u *Usecase) MemberHistory(ctx context.Context, memberID uint64) ([]report.HistoryEntry, error) {
	if _, err := u.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.repo.MemberHistory(ctx, memberID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i := range rows {
		l := loan.Loan{DueDate: rows[i].DueDate, ReturnedAt: rows[i].ReturnedAt}
		rows[i].Status = string(l.StatusAt(now, u.policy.Location))
	}
	return rows, nil
}

func (u *Usecase) PendingFines(ctx context.Context) ([]report.PendingFine, error) {
	return cached(ctx, u, "report:fines-pending", func() ([]report.PendingFine, error) {
		return u.repo.PendingFines(ctx)
	})
}

func (u *Usecase) FineTotals(ctx context.Context) ([]report.FineTotal, error) {
	return cached(ctx, u, "report:fines-totals", func() ([]report.FineTotal, error) {
		return u.repo.FineTotals(ctx)
	})
}
