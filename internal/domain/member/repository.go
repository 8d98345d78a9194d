package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uint64) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	UpdateStatus(ctx context.Context, id uint64, s Status) error
	// Update writes every editable column of m, zero values included.
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uint64) error
}
