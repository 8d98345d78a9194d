package finemock

import (
	"context"
	"time"

	domain "library-backend/internal/domain/fine"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn           func(ctx context.Context, f *domain.Fine) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Fine, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Fine, error)
	GetByLoanIDFn      func(ctx context.Context, loanID uint64) (*domain.Fine, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Fine, error)
	MarkPaidFn         func(ctx context.Context, id uint64, at time.Time) (bool, error)
	DeleteByLoanIDFn   func(ctx context.Context, loanID uint64) error
}

func (m *Repo) Create(ctx context.Context, f *domain.Fine) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Fine, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Fine, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Fine, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Fine, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkPaid(ctx context.Context, id uint64, at time.Time) (bool, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, id, at)
	}
	return true, nil
}

func (m *Repo) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	if m.DeleteByLoanIDFn != nil {
		return m.DeleteByLoanIDFn(ctx, loanID)
	}
	return nil
}
