package membermock

import (
	"context"

	domain "library-backend/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, m *domain.Member) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Member, error)
	ListFn         func(ctx context.Context) ([]domain.Member, error)
	UpdateStatusFn func(ctx context.Context, id uint64, s domain.Status) error
	UpdateFn       func(ctx context.Context, m *domain.Member) error
	DeleteFn       func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, mem *domain.Member) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mem)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Member, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Member, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, s domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, s)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, mem *domain.Member) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, mem)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
