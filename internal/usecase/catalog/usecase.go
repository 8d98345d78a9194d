// Package catalog manages the thin records around circulation: books with
// their publishers, authors and genres, physical copies, and members.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"
	"library-backend/internal/domain/uow"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid status")

type Usecase struct {
	books   book.Repository
	copies  bookcopy.Repository
	members member.Repository
	uow     uow.UnitOfWork
	now     func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(books book.Repository, copies bookcopy.Repository, members member.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		books:   books,
		copies:  copies,
		members: members,
		uow:     tx,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// ---- books ----

func (u *Usecase) CreateBook(ctx context.Context, in BookInput) (*BookDTO, error) {
	var id uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b := &book.Book{}
		if err := fillBook(ctx, r.Books, b, in); err != nil {
			return err
		}
		if err := r.Books.Create(ctx, b); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return book.ErrISBNTaken
			}
			return fmt.Errorf("insert book: %w", err)
		}
		id = b.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("book_id", id).Str("isbn", in.ISBN).Msg("catalog: book created")
	return u.GetBook(ctx, id)
}

// UpdateBook replaces every field of the book, author and genre lists included.
func (u *Usecase) UpdateBook(ctx context.Context, id uint64, in BookInput) (*BookDTO, error) {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Books.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return book.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load book %d: %w", id, err)
		}
		b.Authors, b.Genres, b.Publisher = nil, nil, nil
		if err := fillBook(ctx, r.Books, b, in); err != nil {
			return err
		}
		if err := r.Books.Update(ctx, b); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return book.ErrISBNTaken
			}
			return fmt.Errorf("update book %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("book_id", id).Str("isbn", in.ISBN).Msg("catalog: book updated")
	return u.GetBook(ctx, id)
}

// DeleteBook removes a book with no copies left. Pending reservations for
// it go with it.
func (u *Usecase) DeleteBook(ctx context.Context, id uint64) error {
	var dropped int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Books.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrNotFound
			}
			return fmt.Errorf("load book %d: %w", id, err)
		}
		counts, err := r.Copies.CountByBook(ctx, id)
		if err != nil {
			return fmt.Errorf("count copies of book %d: %w", id, err)
		}
		for _, n := range counts {
			if n > 0 {
				return book.ErrHasCopies
			}
		}
		if dropped, err = r.Reservations.Delete(ctx, reservation.Filter{BookID: id}); err != nil {
			return fmt.Errorf("drop reservations of book %d: %w", id, err)
		}
		return restricted(r.Books.Delete(ctx, id), book.ErrHasCopies)
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("book_id", id).Int64("reservations_dropped", dropped).Msg("catalog: book deleted")
	return nil
}

func fillBook(ctx context.Context, books book.Repository, b *book.Book, in BookInput) error {
	p, err := books.FindOrCreatePublisher(ctx, strings.TrimSpace(in.Publisher))
	if err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	b.Title = strings.TrimSpace(in.Title)
	b.ISBN = strings.TrimSpace(in.ISBN)
	b.PublisherID = p.ID
	b.Year = in.Year
	b.Edition = in.Edition
	b.Pages = in.Pages
	b.Synopsis = in.Synopsis
	for _, a := range in.Authors {
		author, err := books.FindOrCreateAuthor(ctx, strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName))
		if err != nil {
			return fmt.Errorf("author: %w", err)
		}
		b.Authors = append(b.Authors, *author)
	}
	for _, name := range in.Genres {
		g, err := books.FindOrCreateGenre(ctx, strings.TrimSpace(name))
		if err != nil {
			return fmt.Errorf("genre: %w", err)
		}
		b.Genres = append(b.Genres, *g)
	}
	return nil
}

// restricted maps a foreign key rejection to the domain conflict it means.
func restricted(err, conflict error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return conflict
	}
	return err
}

func (u *Usecase) GetBook(ctx context.Context, id uint64) (*BookDTO, error) {
	b, err := u.books.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, book.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	counts, err := u.copies.CountByBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookDTO{Book: *b, Copies: counts}, nil
}

func (u *Usecase) ListBooks(ctx context.Context) ([]book.Book, error) {
	return u.books.List(ctx)
}

// ---- copies ----

func (u *Usecase) AddCopy(ctx context.Context, bookID uint64, locationCode string) (*bookcopy.Copy, error) {
	if _, err := u.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound
		}
		return nil, err
	}
	c := &bookcopy.Copy{BookID: bookID, LocationCode: strings.TrimSpace(locationCode), Status: bookcopy.StatusAvailable}
	if err := u.copies.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Info().Uint64("copy_id", c.ID).Uint64("book_id", bookID).Msg("catalog: copy added")
	return c, nil
}

func (u *Usecase) GetCopy(ctx context.Context, id uint64) (*bookcopy.Copy, error) {
	c, err := u.copies.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, bookcopy.ErrNotFound
	}
	return c, err
}

func (u *Usecase) ListCopies(ctx context.Context, f CopyFilter) ([]bookcopy.Copy, error) {
	s := bookcopy.Status(f.Status)
	if s != "" && !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.copies.List(ctx, bookcopy.Filter{BookID: f.BookID, Status: s})
}

// SetCopyStatus is the manual shelf-management transition. "loaned" belongs
// to the loan lifecycle and a copy that is out cannot be re-labelled.
func (u *Usecase) SetCopyStatus(ctx context.Context, id uint64, status string) (*bookcopy.Copy, error) {
	to := bookcopy.Status(status)
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	if to == bookcopy.StatusLoaned {
		return nil, bookcopy.ErrManualLoaned
	}

	var out *bookcopy.Copy
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Copies.GetByIDForUpdate(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bookcopy.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock copy %d: %w", id, err)
		}
		active, err := r.Loans.CountActiveByCopy(ctx, id)
		if err != nil {
			return fmt.Errorf("count loans of copy %d: %w", id, err)
		}
		if active > 0 {
			return bookcopy.ErrHasActiveLoan
		}
		if c.Status == to {
			out = c
			return nil
		}
		ok, err := r.Copies.TransitionStatus(ctx, id, c.Status, to)
		if err != nil {
			return fmt.Errorf("update copy %d: %w", id, err)
		}
		if !ok {
			return bookcopy.ErrHasActiveLoan
		}
		log.Info().Uint64("copy_id", id).Str("from", string(c.Status)).Str("to", string(to)).Msg("catalog: copy status changed")
		c.Status = to
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCopy removes a copy that was never lent. Copies with loan history
// are retired with status "lost" or "damaged" instead.
func (u *Usecase) DeleteCopy(ctx context.Context, id uint64) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Copies.GetByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bookcopy.ErrNotFound
			}
			return fmt.Errorf("lock copy %d: %w", id, err)
		}
		active, err := r.Loans.CountActiveByCopy(ctx, id)
		if err != nil {
			return fmt.Errorf("count loans of copy %d: %w", id, err)
		}
		if active > 0 {
			return bookcopy.ErrHasActiveLoan
		}
		total, err := r.Loans.Count(ctx, loan.Filter{CopyID: id})
		if err != nil {
			return fmt.Errorf("count loans of copy %d: %w", id, err)
		}
		if total > 0 {
			return bookcopy.ErrHasHistory
		}
		return restricted(r.Copies.Delete(ctx, id), bookcopy.ErrHasHistory)
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("copy_id", id).Msg("catalog: copy deleted")
	return nil
}

// ---- members ----

func (u *Usecase) CreateMember(ctx context.Context, in MemberInput) (*member.Member, error) {
	m := &member.Member{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        in.Phone,
		Address:      in.Address,
		BirthDate:    in.BirthDate,
		RegisteredAt: u.now(),
		Status:       member.StatusActive,
	}
	if err := u.members.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, member.ErrEmailTaken
		}
		return nil, err
	}
	log.Info().Uint64("member_id", m.ID).Msg("catalog: member registered")
	return m, nil
}

func (u *Usecase) GetMember(ctx context.Context, id uint64) (*member.Member, error) {
	m, err := u.members.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, member.ErrNotFound
	}
	return m, err
}

func (u *Usecase) ListMembers(ctx context.Context) ([]member.Member, error) {
	return u.members.List(ctx)
}

// UpdateMember rewrites the member's profile. An empty Status keeps the
// current one.
func (u *Usecase) UpdateMember(ctx context.Context, id uint64, in MemberInput) (*member.Member, error) {
	s := member.Status(in.Status)
	if s != "" && !s.Valid() {
		return nil, ErrInvalidStatus
	}
	var out *member.Member
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load member %d: %w", id, err)
		}
		m.FirstName = strings.TrimSpace(in.FirstName)
		m.LastName = strings.TrimSpace(in.LastName)
		m.Email = strings.ToLower(strings.TrimSpace(in.Email))
		m.Phone = in.Phone
		m.Address = in.Address
		m.BirthDate = in.BirthDate
		if s != "" {
			m.Status = s
		}
		if err := r.Members.Update(ctx, m); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return member.ErrEmailTaken
			}
			return fmt.Errorf("update member %d: %w", id, err)
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("member_id", id).Str("status", string(out.Status)).Msg("catalog: member updated")
	return out, nil
}

// DeleteMember removes a member who never borrowed. Their pending
// reservations are dropped with them.
func (u *Usecase) DeleteMember(ctx context.Context, id uint64) error {
	var dropped int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return member.ErrNotFound
			}
			return fmt.Errorf("load member %d: %w", id, err)
		}
		active, err := r.Loans.Count(ctx, loan.Filter{MemberID: id, OnlyActive: true})
		if err != nil {
			return fmt.Errorf("count loans of member %d: %w", id, err)
		}
		if active > 0 {
			return member.ErrHasLoans
		}
		total, err := r.Loans.Count(ctx, loan.Filter{MemberID: id})
		if err != nil {
			return fmt.Errorf("count loans of member %d: %w", id, err)
		}
		if total > 0 {
			return member.ErrHasHistory
		}
		if dropped, err = r.Reservations.Delete(ctx, reservation.Filter{MemberID: id}); err != nil {
			return fmt.Errorf("drop reservations of member %d: %w", id, err)
		}
		return restricted(r.Members.Delete(ctx, id), member.ErrHasHistory)
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("member_id", id).Int64("reservations_dropped", dropped).Msg("catalog: member deleted")
	return nil
}

func (u *Usecase) SetMemberStatus(ctx context.Context, id uint64, status string) (*member.Member, error) {
	s := member.Status(status)
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	m, err := u.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == s {
		return m, nil
	}
	if err := u.members.UpdateStatus(ctx, id, s); err != nil {
		return nil, err
	}
	log.Info().Uint64("member_id", id).Str("from", string(m.Status)).Str("to", string(s)).Msg("catalog: member status changed")
	m.Status = s
	return m, nil
}
