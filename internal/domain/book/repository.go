package book

import "context"

type Repository interface {
	// Create inserts the book together with its author and genre links.
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id uint64) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	// Update writes the scalar columns and replaces the author and genre links.
	Update(ctx context.Context, b *Book) error
	// Delete removes the book and its author and genre links.
	Delete(ctx context.Context, id uint64) error

	FindOrCreatePublisher(ctx context.Context, name string) (*Publisher, error)
	FindOrCreateAuthor(ctx context.Context, firstName, lastName string) (*Author, error)
	FindOrCreateGenre(ctx context.Context, name string) (*Genre, error)
}
