package copymock

import (
	"context"

	domain "library-backend/internal/domain/bookcopy"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies bookcopy.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Copy) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Copy, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Copy, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Copy, error)
	CountByBookFn      func(ctx context.Context, bookID uint64) (map[domain.Status]int64, error)
	TransitionStatusFn func(ctx context.Context, id uint64, from, to domain.Status) (bool, error)
	DeleteFn           func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Copy) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Copy, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Copy, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Copy, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByBook(ctx context.Context, bookID uint64) (map[domain.Status]int64, error) {
	if m.CountByBookFn != nil {
		return m.CountByBookFn(ctx, bookID)
	}
	return map[domain.Status]int64{}, nil
}

func (m *Repo) TransitionStatus(ctx context.Context, id uint64, from, to domain.Status) (bool, error) {
	if m.TransitionStatusFn != nil {
		return m.TransitionStatusFn(ctx, id, from, to)
	}
	return true, nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
