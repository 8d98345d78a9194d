package bookmock

import (
	"context"

	domain "library-backend/internal/domain/book"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn                func(ctx context.Context, b *domain.Book) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Book, error)
	ListFn                  func(ctx context.Context) ([]domain.Book, error)
	UpdateFn                func(ctx context.Context, b *domain.Book) error
	DeleteFn                func(ctx context.Context, id uint64) error
	FindOrCreatePublisherFn func(ctx context.Context, name string) (*domain.Publisher, error)
	FindOrCreateAuthorFn    func(ctx context.Context, firstName, lastName string) (*domain.Author, error)
	FindOrCreateGenreFn     func(ctx context.Context, name string) (*domain.Genre, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Update(ctx context.Context, b *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) FindOrCreatePublisher(ctx context.Context, name string) (*domain.Publisher, error) {
	if m.FindOrCreatePublisherFn != nil {
		return m.FindOrCreatePublisherFn(ctx, name)
	}
	return &domain.Publisher{ID: 1, Name: name}, nil
}

func (m *Repo) FindOrCreateAuthor(ctx context.Context, firstName, lastName string) (*domain.Author, error) {
	if m.FindOrCreateAuthorFn != nil {
		return m.FindOrCreateAuthorFn(ctx, firstName, lastName)
	}
	return &domain.Author{ID: 1, FirstName: firstName, LastName: lastName}, nil
}

func (m *Repo) FindOrCreateGenre(ctx context.Context, name string) (*domain.Genre, error) {
	if m.FindOrCreateGenreFn != nil {
		return m.FindOrCreateGenreFn(ctx, name)
	}
	return &domain.Genre{ID: 1, Name: name}, nil
}
