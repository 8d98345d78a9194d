package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"
	"library-backend/internal/domain/uow"
	"library-backend/internal/testutil/bookmock"
	"library-backend/internal/testutil/copymock"
	"library-backend/internal/testutil/loanmock"
	"library-backend/internal/testutil/membermock"
	"library-backend/internal/testutil/reservationmock"
	"library-backend/internal/testutil/uowmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakes struct {
	books        *bookmock.Repo
	copies       *copymock.Repo
	members      *membermock.Repo
	loans        *loanmock.Repo
	reservations *reservationmock.Repo
}

func newFakes() *fakes {
	return &fakes{
		books:        &bookmock.Repo{},
		copies:       &copymock.Repo{},
		members:      &membermock.Repo{},
		loans:        &loanmock.Repo{},
		reservations: &reservationmock.Repo{},
	}
}

func (f *fakes) usecase() *Usecase {
	tx := uowmock.Passthrough(uow.Repos{
		Books:        f.books,
		Copies:       f.copies,
		Members:      f.members,
		Loans:        f.loans,
		Reservations: f.reservations,
	})
	return NewUsecase(f.books, f.copies, f.members, tx,
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }))
}

func TestCreateBook_ResolvesAssociations(t *testing.T) {
	f := newFakes()
	var stored *book.Book
	f.books.CreateFn = func(_ context.Context, b *book.Book) error {
		b.ID = 12
		stored = b
		return nil
	}
	f.books.GetByIDFn = func(_ context.Context, id uint64) (*book.Book, error) { return stored, nil }

	dto, err := f.usecase().CreateBook(context.Background(), BookInput{
		Title:     " Dune ",
		ISBN:      "9780441013593",
		Publisher: "Ace",
		Authors:   []AuthorInput{{FirstName: "Frank", LastName: "Herbert"}},
		Genres:    []string{"Sci-Fi", "Classic"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), dto.ID)
	assert.Equal(t, "Dune", stored.Title)
	assert.Len(t, stored.Authors, 1)
	assert.Len(t, stored.Genres, 2)
	assert.NotNil(t, dto.Copies)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	f := newFakes()
	f.books.CreateFn = func(context.Context, *book.Book) error { return gorm.ErrDuplicatedKey }

	_, err := f.usecase().CreateBook(context.Background(), BookInput{Title: "x", ISBN: "1", Publisher: "p"})
	assert.ErrorIs(t, err, book.ErrISBNTaken)
}

func TestAddCopy(t *testing.T) {
	f := newFakes()
	f.books.GetByIDFn = func(_ context.Context, id uint64) (*book.Book, error) {
		if id != 1 {
			return nil, gorm.ErrRecordNotFound
		}
		return &book.Book{ID: 1}, nil
	}
	f.copies.CreateFn = func(_ context.Context, c *bookcopy.Copy) error {
		c.ID = 5
		return nil
	}
	uc := f.usecase()

	c, err := uc.AddCopy(context.Background(), 1, "B-2")
	require.NoError(t, err)
	assert.Equal(t, bookcopy.StatusAvailable, c.Status)
	assert.Equal(t, "B-2", c.LocationCode)

	_, err = uc.AddCopy(context.Background(), 2, "B-2")
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestSetCopyStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		current bookcopy.Status
		active  int64
		wantErr error
		want    bookcopy.Status
	}{
		{name: "to maintenance", status: "maintenance", current: bookcopy.StatusAvailable, want: bookcopy.StatusMaintenance},
		{name: "back from lost", status: "available", current: bookcopy.StatusLost, want: bookcopy.StatusAvailable},
		{name: "unchanged", status: "lost", current: bookcopy.StatusLost, want: bookcopy.StatusLost},
		{name: "loaned is not manual", status: "loaned", wantErr: bookcopy.ErrManualLoaned},
		{name: "unknown", status: "burnt", wantErr: ErrInvalidStatus},
		{name: "copy is out", status: "lost", current: bookcopy.StatusLoaned, active: 1, wantErr: bookcopy.ErrHasActiveLoan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakes()
			f.copies.GetByIDForUpdateFn = func(_ context.Context, id uint64) (*bookcopy.Copy, error) {
				return &bookcopy.Copy{ID: id, Status: tt.current}, nil
			}
			f.loans.CountActiveByCopyFn = func(context.Context, uint64) (int64, error) { return tt.active, nil }
			f.copies.TransitionStatusFn = func(_ context.Context, _ uint64, from, to bookcopy.Status) (bool, error) {
				if from != tt.current || to != tt.want {
					t.Fatalf("transition %s->%s", from, to)
				}
				return true, nil
			}

			got, err := f.usecase().SetCopyStatus(context.Background(), 3, tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && got.Status != tt.want {
				t.Fatalf("status = %s, want %s", got.Status, tt.want)
			}
		})
	}
}

func TestSetCopyStatus_NotFound(t *testing.T) {
	f := newFakes()
	f.copies.GetByIDForUpdateFn = func(context.Context, uint64) (*bookcopy.Copy, error) { return nil, gorm.ErrRecordNotFound }
	_, err := f.usecase().SetCopyStatus(context.Background(), 3, "lost")
	assert.ErrorIs(t, err, bookcopy.ErrNotFound)
}

func TestCreateMember(t *testing.T) {
	f := newFakes()
	var stored *member.Member
	f.members.CreateFn = func(_ context.Context, m *member.Member) error {
		if m.Email == "taken@x.io" {
			return gorm.ErrDuplicatedKey
		}
		stored = m
		return nil
	}
	uc := f.usecase()

	m, err := uc.CreateMember(context.Background(), MemberInput{FirstName: "Ada", LastName: "L", Email: " Ada@X.io "})
	require.NoError(t, err)
	assert.Equal(t, "ada@x.io", stored.Email)
	assert.Equal(t, member.StatusActive, m.Status)
	assert.False(t, m.RegisteredAt.IsZero())

	_, err = uc.CreateMember(context.Background(), MemberInput{FirstName: "B", LastName: "B", Email: "taken@x.io"})
	assert.ErrorIs(t, err, member.ErrEmailTaken)
}

func TestSetMemberStatus(t *testing.T) {
	f := newFakes()
	f.members.GetByIDFn = func(_ context.Context, id uint64) (*member.Member, error) {
		if id == 404 {
			return nil, gorm.ErrRecordNotFound
		}
		return &member.Member{ID: id, Status: member.StatusActive}, nil
	}
	updated := false
	f.members.UpdateStatusFn = func(_ context.Context, id uint64, s member.Status) error {
		updated = s == member.StatusBlocked
		return nil
	}
	uc := f.usecase()

	m, err := uc.SetMemberStatus(context.Background(), 1, "blocked")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, member.StatusBlocked, m.Status)

	_, err = uc.SetMemberStatus(context.Background(), 404, "blocked")
	assert.ErrorIs(t, err, member.ErrNotFound)

	_, err = uc.SetMemberStatus(context.Background(), 1, "banned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListCopies_RejectsUnknownStatus(t *testing.T) {
	f := newFakes()
	_, err := f.usecase().ListCopies(context.Background(), CopyFilter{Status: "borrowed"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateBook_ReplacesFieldsAndLinks(t *testing.T) {
	f := newFakes()
	stored := &book.Book{
		ID:      4,
		Title:   "Old",
		ISBN:    "111",
		Authors: []book.Author{{ID: 1}, {ID: 2}},
		Genres:  []book.Genre{{ID: 9}},
	}
	f.books.GetByIDFn = func(context.Context, uint64) (*book.Book, error) { return stored, nil }
	var written *book.Book
	f.books.UpdateFn = func(_ context.Context, b *book.Book) error {
		written = b
		return nil
	}

	dto, err := f.usecase().UpdateBook(context.Background(), 4, BookInput{
		Title:     " New ",
		ISBN:      "222",
		Publisher: "Ace",
		Authors:   []AuthorInput{{FirstName: "Frank", LastName: "Herbert"}},
	})
	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Equal(t, uint64(4), written.ID)
	assert.Equal(t, "New", written.Title)
	assert.Equal(t, "222", written.ISBN)
	assert.Len(t, written.Authors, 1)
	assert.Empty(t, written.Genres)
	assert.Equal(t, uint64(4), dto.ID)
}

func TestUpdateBook_Errors(t *testing.T) {
	f := newFakes()
	f.books.GetByIDFn = func(_ context.Context, id uint64) (*book.Book, error) {
		if id == 404 {
			return nil, gorm.ErrRecordNotFound
		}
		return &book.Book{ID: id}, nil
	}
	f.books.UpdateFn = func(context.Context, *book.Book) error { return gorm.ErrDuplicatedKey }
	uc := f.usecase()

	_, err := uc.UpdateBook(context.Background(), 404, BookInput{Title: "x", ISBN: "1", Publisher: "p"})
	assert.ErrorIs(t, err, book.ErrNotFound)

	_, err = uc.UpdateBook(context.Background(), 1, BookInput{Title: "x", ISBN: "1", Publisher: "p"})
	assert.ErrorIs(t, err, book.ErrISBNTaken)
}

func TestDeleteBook(t *testing.T) {
	tests := []struct {
		name    string
		id      uint64
		copies  map[bookcopy.Status]int64
		fkErr   error
		wantErr error
		deleted bool
	}{
		{name: "no copies", id: 1, copies: map[bookcopy.Status]int64{bookcopy.StatusAvailable: 0}, deleted: true},
		{name: "has a lost copy", id: 1, copies: map[bookcopy.Status]int64{bookcopy.StatusLost: 1}, wantErr: book.ErrHasCopies},
		{name: "missing", id: 404, wantErr: book.ErrNotFound},
		{name: "rejected by foreign key", id: 1, fkErr: gorm.ErrForeignKeyViolated, wantErr: book.ErrHasCopies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakes()
			f.books.GetByIDFn = func(_ context.Context, id uint64) (*book.Book, error) {
				if id == 404 {
					return nil, gorm.ErrRecordNotFound
				}
				return &book.Book{ID: id}, nil
			}
			f.copies.CountByBookFn = func(context.Context, uint64) (map[bookcopy.Status]int64, error) { return tt.copies, nil }
			var dropped reservation.Filter
			f.reservations.DeleteFn = func(_ context.Context, rf reservation.Filter) (int64, error) {
				dropped = rf
				return 2, nil
			}
			deleted := false
			f.books.DeleteFn = func(context.Context, uint64) error {
				if tt.fkErr != nil {
					return tt.fkErr
				}
				deleted = true
				return nil
			}

			err := f.usecase().DeleteBook(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			assert.Equal(t, tt.deleted, deleted)
			if tt.deleted {
				assert.Equal(t, reservation.Filter{BookID: tt.id}, dropped)
			}
		})
	}
}

func TestDeleteCopy(t *testing.T) {
	tests := []struct {
		name    string
		found   bool
		active  int64
		total   int64
		wantErr error
		deleted bool
	}{
		{name: "never lent", found: true, deleted: true},
		{name: "out on loan", found: true, active: 1, total: 1, wantErr: bookcopy.ErrHasActiveLoan},
		{name: "returned loans", found: true, total: 3, wantErr: bookcopy.ErrHasHistory},
		{name: "missing", wantErr: bookcopy.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakes()
			f.copies.GetByIDForUpdateFn = func(_ context.Context, id uint64) (*bookcopy.Copy, error) {
				if !tt.found {
					return nil, gorm.ErrRecordNotFound
				}
				return &bookcopy.Copy{ID: id}, nil
			}
			f.loans.CountActiveByCopyFn = func(context.Context, uint64) (int64, error) { return tt.active, nil }
			f.loans.CountFn = func(_ context.Context, lf loan.Filter) (int64, error) {
				assert.Equal(t, loan.Filter{CopyID: 8}, lf)
				return tt.total, nil
			}
			deleted := false
			f.copies.DeleteFn = func(context.Context, uint64) error {
				deleted = true
				return nil
			}

			err := f.usecase().DeleteCopy(context.Background(), 8)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			assert.Equal(t, tt.deleted, deleted)
		})
	}
}

func TestUpdateMember(t *testing.T) {
	f := newFakes()
	f.members.GetByIDFn = func(_ context.Context, id uint64) (*member.Member, error) {
		if id == 404 {
			return nil, gorm.ErrRecordNotFound
		}
		return &member.Member{ID: id, Email: "old@x.io", Status: member.StatusBlocked}, nil
	}
	var written *member.Member
	f.members.UpdateFn = func(_ context.Context, m *member.Member) error {
		if m.Email == "taken@x.io" {
			return gorm.ErrDuplicatedKey
		}
		written = m
		return nil
	}
	uc := f.usecase()

	m, err := uc.UpdateMember(context.Background(), 1, MemberInput{FirstName: " Ada ", LastName: "L", Email: " Ada@X.io "})
	require.NoError(t, err)
	assert.Equal(t, "ada@x.io", written.Email)
	assert.Equal(t, "Ada", written.FirstName)
	assert.Equal(t, member.StatusBlocked, m.Status, "empty status keeps the current one")

	m, err = uc.UpdateMember(context.Background(), 1, MemberInput{FirstName: "A", LastName: "L", Email: "a@x.io", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, member.StatusActive, m.Status)

	_, err = uc.UpdateMember(context.Background(), 1, MemberInput{FirstName: "A", LastName: "L", Email: "taken@x.io"})
	assert.ErrorIs(t, err, member.ErrEmailTaken)

	_, err = uc.UpdateMember(context.Background(), 404, MemberInput{FirstName: "A", LastName: "L", Email: "a@x.io"})
	assert.ErrorIs(t, err, member.ErrNotFound)

	_, err = uc.UpdateMember(context.Background(), 1, MemberInput{Status: "banned"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteMember(t *testing.T) {
	tests := []struct {
		name    string
		id      uint64
		active  int64
		total   int64
		wantErr error
		deleted bool
	}{
		{name: "never borrowed", id: 1, deleted: true},
		{name: "active loan", id: 1, active: 1, total: 1, wantErr: member.ErrHasLoans},
		{name: "loan history", id: 1, total: 2, wantErr: member.ErrHasHistory},
		{name: "missing", id: 404, wantErr: member.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakes()
			f.members.GetByIDFn = func(_ context.Context, id uint64) (*member.Member, error) {
				if id == 404 {
					return nil, gorm.ErrRecordNotFound
				}
				return &member.Member{ID: id}, nil
			}
			f.loans.CountFn = func(_ context.Context, lf loan.Filter) (int64, error) {
				if lf.OnlyActive {
					return tt.active, nil
				}
				return tt.total, nil
			}
			var dropped reservation.Filter
			f.reservations.DeleteFn = func(_ context.Context, rf reservation.Filter) (int64, error) {
				dropped = rf
				return 1, nil
			}
			deleted := false
			f.members.DeleteFn = func(context.Context, uint64) error {
				deleted = true
				return nil
			}

			err := f.usecase().DeleteMember(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			assert.Equal(t, tt.deleted, deleted)
			if tt.deleted {
				assert.Equal(t, reservation.Filter{MemberID: tt.id}, dropped)
			}
		})
	}
}
