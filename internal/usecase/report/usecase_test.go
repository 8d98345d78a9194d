package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/report"
	"library-backend/internal/testutil/membermock"
	"library-backend/internal/testutil/reportmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// mapCache is an in-memory Cache that stores values as-is.
type mapCache struct {
	data   map[string]any
	gets   int
	sets   int
	getErr error
}

func newMapCache() *mapCache { return &mapCache{data: map[string]any{}} }

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]report.BookLoanCount:
		*d = v.([]report.BookLoanCount)
	case *[]report.OverdueLoan:
		*d = v.([]report.OverdueLoan)
	default:
		return false, nil
	}
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.sets++
	c.data[key] = v
	return nil
}

func newUsecase(repo *reportmock.Repo, opts ...Option) *Usecase {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewUsecase(repo, &membermock.Repo{}, fine.NewPolicy(1.5, time.UTC), opts...)
}

func TestOverdue_ProjectsFines(t *testing.T) {
	var asked time.Time
	repo := &reportmock.Repo{OverdueFn: func(_ context.Context, d time.Time) ([]report.OverdueLoan, error) {
		asked = d
		return []report.OverdueLoan{
			{LoanID: 1, DueDate: day(2024, 1, 10)},
			{LoanID: 2, DueDate: day(2024, 1, 14)},
		}, nil
	}}

	rows, err := newUsecase(repo).Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 15), asked)
	require.Len(t, rows, 2)
	assert.Equal(t, 5, rows[0].OverdueDays)
	assert.InDelta(t, 7.5, rows[0].ProjectedFine, 1e-9)
	assert.Equal(t, 1, rows[1].OverdueDays)
	assert.InDelta(t, 1.5, rows[1].ProjectedFine, 1e-9)
}

func TestOverdue_UsesPolicyTimezone(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	var asked time.Time
	repo := &reportmock.Repo{OverdueFn: func(_ context.Context, d time.Time) ([]report.OverdueLoan, error) {
		asked = d
		return nil, nil
	}}
	late := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC) // already the 16th in WIB
	u := NewUsecase(repo, &membermock.Repo{}, fine.NewPolicy(1, loc), WithClock(func() time.Time { return late }))

	_, err := u.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 16), asked)
}

func TestMostBorrowed_LimitAndCache(t *testing.T) {
	var limits []int
	repo := &reportmock.Repo{MostBorrowedFn: func(_ context.Context, limit int) ([]report.BookLoanCount, error) {
		limits = append(limits, limit)
		return []report.BookLoanCount{{BookID: 1, LoanCount: 3}}, nil
	}}
	c := newMapCache()
	u := newUsecase(repo, WithCache(c, time.Minute))

	first, err := u.MostBorrowed(context.Background(), 0)
	require.NoError(t, err)
	second, err := u.MostBorrowed(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{DefaultLimit}, limits, "second call served from cache")

	_, err = u.MostBorrowed(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []int{DefaultLimit, MaxLimit}, limits)
}

func TestCache_ReadFailureFallsBackToQuery(t *testing.T) {
	calls := 0
	repo := &reportmock.Repo{MostBorrowedFn: func(context.Context, int) ([]report.BookLoanCount, error) {
		calls++
		return nil, nil
	}}
	c := newMapCache()
	c.getErr = errors.New("redis down")

	_, err := newUsecase(repo, WithCache(c, time.Minute)).MostBorrowed(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	repo := &reportmock.Repo{AvailabilityFn: func(context.Context) ([]report.Availability, error) { return nil, boom }}
	c := newMapCache()

	_, err := newUsecase(repo, WithCache(c, time.Minute)).Availability(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.sets)
}

func TestRefreshOverdue_PrimesCache(t *testing.T) {
	calls := 0
	repo := &reportmock.Repo{OverdueFn: func(context.Context, time.Time) ([]report.OverdueLoan, error) {
		calls++
		return []report.OverdueLoan{{LoanID: 7, DueDate: day(2024, 1, 12)}}, nil
	}}
	c := newMapCache()
	u := newUsecase(repo, WithCache(c, time.Minute))

	n, err := u.RefreshOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := u.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "overdue served from the primed cache")
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].OverdueDays)
}

func TestMemberHistory_DerivesStatus(t *testing.T) {
	returned := day(2024, 1, 3)
	repo := &reportmock.Repo{MemberHistoryFn: func(_ context.Context, id uint64) ([]report.HistoryEntry, error) {
		return []report.HistoryEntry{
			{LoanID: 1, DueDate: day(2024, 1, 1), ReturnedAt: &returned},
			{LoanID: 2, DueDate: day(2024, 1, 14)},
			{LoanID: 3, DueDate: day(2024, 1, 15)},
		}, nil
	}}
	members := &membermock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*member.Member, error) {
		if id == 404 {
			return nil, gorm.ErrRecordNotFound
		}
		return &member.Member{ID: id}, nil
	}}
	u := NewUsecase(repo, members, fine.NewPolicy(1, time.UTC), WithClock(func() time.Time { return fixedNow }))

	rows, err := u.MemberHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "returned", rows[0].Status)
	assert.Equal(t, "overdue", rows[1].Status)
	assert.Equal(t, "active", rows[2].Status)

	_, err = u.MemberHistory(context.Background(), 404)
	assert.ErrorIs(t, err, member.ErrNotFound)
}

func TestWithCache_ZeroTTLDisables(t *testing.T) {
	c := newMapCache()
	repo := &reportmock.Repo{FineTotalsFn: func(context.Context) ([]report.FineTotal, error) { return nil, nil }}

	_, err := newUsecase(repo, WithCache(c, 0)).FineTotals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, c.gets)
	assert.Zero(t, c.sets)
}
