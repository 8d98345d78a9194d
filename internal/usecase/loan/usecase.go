package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/uow"
	"library-backend/pkg/calendar"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const DefaultLoanPeriodDays = 14

var errCopyStateMismatch = errors.New("copy of an active loan is not marked loaned")

type Usecase struct {
	repo       loan.Repository
	uow        uow.UnitOfWork
	policy     fine.Policy
	periodDays int
	now        func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLoanPeriod(days int) Option {
	return func(u *Usecase) {
		if days > 0 {
			u.periodDays = days
		}
	}
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork, policy fine.Policy, opts ...Option) *Usecase {
	u := &Usecase{
		repo:       r,
		uow:        tx,
		policy:     policy,
		periodDays: DefaultLoanPeriodDays,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*CreatedLoanDTO, error) {
	if in.CopyID == 0 || in.MemberID == 0 {
		return nil, loan.ErrInvalidInput
	}
	now := u.now()
	due := calendar.Date(now, u.policy.Location).AddDate(0, 0, u.periodDays)
	if in.DueDate != nil {
		// past dates are accepted
		due = calendar.Date(*in.DueDate, time.UTC)
	}

	var (
		created   *loan.Loan
		fulfilled int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Copies.GetByIDForUpdate(ctx, in.CopyID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bookcopy.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock copy %d: %w", in.CopyID, err)
		}
		if c.Status != bookcopy.StatusAvailable {
			return bookcopy.ErrNotAvailable
		}

		m, err := r.Members.GetByID(ctx, in.MemberID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get member %d: %w", in.MemberID, err)
		}
		if !m.CanBorrow() {
			return member.ErrNotActive
		}

		l := &loan.Loan{
			CopyID:   c.ID,
			MemberID: m.ID,
			LoanedAt: now,
			DueDate:  due,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		// compare-and-set: a concurrent borrower that also read "available" loses here
		ok, err := r.Copies.TransitionStatus(ctx, c.ID, bookcopy.StatusAvailable, bookcopy.StatusLoaned)
		if err != nil {
			return fmt.Errorf("mark copy %d loaned: %w", c.ID, err)
		}
		if !ok {
			return bookcopy.ErrNotAvailable
		}

		fulfilled, err = r.Reservations.FulfillForMember(ctx, c.BookID, m.ID)
		if err != nil {
			return fmt.Errorf("fulfill reservations: %w", err)
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint64("loan_id", created.ID).
		Uint64("copy_id", created.CopyID).
		Uint64("member_id", created.MemberID).
		Str("due_date", created.DueDate.Format(time.DateOnly)).
		Int64("reservations_fulfilled", fulfilled).
		Msg("loan: created")

	return &CreatedLoanDTO{LoanID: created.ID, DueDate: created.DueDate.Format(time.DateOnly)}, nil
}

func (u *Usecase) Return(ctx context.Context, loanID uint64) (*ReturnLoanDTO, error) {
	var (
		dto      *ReturnLoanDTO
		notified uint64
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsActive() {
			return loan.ErrAlreadyReturned
		}
		now := u.now()

		ok, err := r.Loans.MarkReturned(ctx, l.ID, now)
		if err != nil {
			return fmt.Errorf("mark loan %d returned: %w", l.ID, err)
		}
		if !ok {
			return loan.ErrAlreadyReturned
		}

		c, err := r.Copies.GetByIDForUpdate(ctx, l.CopyID)
		if err != nil {
			return fmt.Errorf("lock copy %d: %w", l.CopyID, err)
		}
		ok, err = r.Copies.TransitionStatus(ctx, c.ID, bookcopy.StatusLoaned, bookcopy.StatusAvailable)
		if err != nil {
			return fmt.Errorf("mark copy %d available: %w", c.ID, err)
		}
		if !ok {
			return fmt.Errorf("copy %d is %s: %w", c.ID, c.Status, errCopyStateMismatch)
		}

		dto = &ReturnLoanDTO{LoanID: l.ID, ReturnedAt: now}

		a := u.policy.Assess(l.DueDate, now)
		dto.OverdueDays = a.OverdueDays
		if a.Due() {
			f := &fine.Fine{
				LoanID:      l.ID,
				Amount:      a.Amount,
				GeneratedAt: now,
				Status:      fine.StatusPending,
			}
			if err := r.Fines.Create(ctx, f); err != nil {
				return fmt.Errorf("insert fine for loan %d: %w", l.ID, err)
			}
			dto.FineGenerated = true
			dto.FineID = &f.ID
			dto.FineAmount = &f.Amount
		}

		next, err := r.Reservations.NotifyNext(ctx, c.BookID, now)
		if err != nil {
			return fmt.Errorf("notify reservation: %w", err)
		}
		if next != nil {
			notified = next.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := log.Info().
		Uint64("loan_id", dto.LoanID).
		Int("overdue_days", dto.OverdueDays).
		Bool("fine_generated", dto.FineGenerated)
	if dto.FineID != nil {
		ev = ev.Uint64("fine_id", *dto.FineID).Float64("fine_amount", *dto.FineAmount)
	}
	if notified != 0 {
		ev = ev.Uint64("reservation_notified", notified)
	}
	ev.Msg("loan: returned")

	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := u.toDTO(l, u.now())
	return &dto, nil
}

// List filters by derived status. An unknown status is ErrInvalidInput.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]LoanDTO, error) {
	now := u.now()
	today := calendar.Date(now, u.policy.Location)

	f := loan.Filter{MemberID: in.MemberID}
	switch loan.Status(in.Status) {
	case "":
	case loan.StatusActive:
		f.OnlyActive = true
		f.DueOnOrAfter = &today
	case loan.StatusOverdue:
		f.OnlyActive = true
		f.DueBefore = &today
	case loan.StatusReturned:
		f.OnlyReturned = true
	default:
		return nil, loan.ErrInvalidInput
	}

	loans, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, u.toDTO(&loans[i], now))
	}
	return out, nil
}

// Delete removes a loan and its fine. An open loan gives its copy back first
// so no copy stays "loaned" without a loan.
func (u *Usecase) Delete(ctx context.Context, loanID uint64) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.IsActive() {
			if _, err := r.Copies.TransitionStatus(ctx, l.CopyID, bookcopy.StatusLoaned, bookcopy.StatusAvailable); err != nil {
				return fmt.Errorf("release copy %d: %w", l.CopyID, err)
			}
		}
		if err := r.Fines.DeleteByLoanID(ctx, l.ID); err != nil {
			return fmt.Errorf("delete fine of loan %d: %w", l.ID, err)
		}
		if err := r.Loans.Delete(ctx, l.ID); err != nil {
			return fmt.Errorf("delete loan %d: %w", l.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("loan_id", loanID).Msg("loan: deleted")
	return nil
}

func (u *Usecase) toDTO(l *loan.Loan, now time.Time) LoanDTO {
	dto := LoanDTO{
		ID:         l.ID,
		CopyID:     l.CopyID,
		MemberID:   l.MemberID,
		LoanedAt:   l.LoanedAt,
		DueDate:    l.DueDate.Format(time.DateOnly),
		ReturnedAt: l.ReturnedAt,
		Status:     string(l.StatusAt(now, u.policy.Location)),
	}
	if l.ReturnedAt != nil {
		dto.OverdueDays = u.policy.Assess(l.DueDate, *l.ReturnedAt).OverdueDays
		return dto
	}
	p := u.policy.Project(l.DueDate, now)
	dto.OverdueDays = p.OverdueDays
	dto.ProjectedFine = p.Amount
	return dto
}
