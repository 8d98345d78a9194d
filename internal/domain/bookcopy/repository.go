package bookcopy

import "context"

type Filter struct {
	BookID uint64
	Status Status
}

type Repository interface {
	Create(ctx context.Context, c *Copy) error
	GetByID(ctx context.Context, id uint64) (*Copy, error)
	// Locks the row until the surrounding transaction ends (where the dialect supports it)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Copy, error)
	List(ctx context.Context, f Filter) ([]Copy, error)
	CountByBook(ctx context.Context, bookID uint64) (map[Status]int64, error)
	// TransitionStatus moves the copy from `from` to `to` in a single conditional
	// statement. It reports false when the copy was not in `from`.
	TransitionStatus(ctx context.Context, id uint64, from, to Status) (bool, error)
	Delete(ctx context.Context, id uint64) error
}
