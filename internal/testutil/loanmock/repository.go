package loanmock

import (
	"context"
	"time"

	domain "library-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn              func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	MarkReturnedFn      func(ctx context.Context, id uint64, at time.Time) (bool, error)
	CountFn             func(ctx context.Context, f domain.Filter) (int64, error)
	CountActiveByCopyFn func(ctx context.Context, copyID uint64) (int64, error)
	DeleteFn            func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkReturned(ctx context.Context, id uint64, at time.Time) (bool, error) {
	if m.MarkReturnedFn != nil {
		return m.MarkReturnedFn(ctx, id, at)
	}
	return true, nil
}

func (m *Repo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, nil
}

func (m *Repo) CountActiveByCopy(ctx context.Context, copyID uint64) (int64, error) {
	if m.CountActiveByCopyFn != nil {
		return m.CountActiveByCopyFn(ctx, copyID)
	}
	return 0, nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
