package mysql

import (
	"context"

	"library-backend/internal/domain/book"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

// Create expects Authors and Genres to carry ids already (see FindOrCreate*);
// gorm only writes the join rows for them.
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.db.WithContext(ctx).Omit("Publisher").Create(b).Error
}

func (r *BookRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Publisher").
		Preload("Authors").
		Preload("Genres")
}

func (r *BookRepository) GetByID(ctx context.Context, id uint64) (*book.Book, error) {
	var out book.Book
	res := r.preloaded(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *BookRepository) List(ctx context.Context) ([]book.Book, error) {
	var out []book.Book
	err := r.preloaded(ctx).Order("title ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	db := r.db.WithContext(ctx)
	err := db.Model(b).
		Omit(clause.Associations).
		Select("title", "isbn", "publisher_id", "year", "edition", "pages", "synopsis", "updated_at").
		Updates(b).Error
	if err != nil {
		return err
	}
	if err := replaceLinks(db.Model(b).Association("Authors"), b.Authors); err != nil {
		return err
	}
	return replaceLinks(db.Model(b).Association("Genres"), b.Genres)
}

func replaceLinks[T any](a *gorm.Association, values []T) error {
	if len(values) == 0 {
		return a.Clear()
	}
	return a.Replace(values)
}

// Delete drops the join rows first; copies and reservations are the caller's concern.
func (r *BookRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Select("Authors", "Genres").
		Delete(&book.Book{ID: id}).Error
}

func (r *BookRepository) FindOrCreatePublisher(ctx context.Context, name string) (*book.Publisher, error) {
	var p book.Publisher
	err := r.db.WithContext(ctx).Where(book.Publisher{Name: name}).FirstOrCreate(&p).Error
	return &p, err
}

func (r *BookRepository) FindOrCreateAuthor(ctx context.Context, firstName, lastName string) (*book.Author, error) {
	var a book.Author
	err := r.db.WithContext(ctx).
		Where(book.Author{FirstName: firstName, LastName: lastName}).
		FirstOrCreate(&a).Error
	return &a, err
}

func (r *BookRepository) FindOrCreateGenre(ctx context.Context, name string) (*book.Genre, error) {
	var g book.Genre
	err := r.db.WithContext(ctx).Where(book.Genre{Name: name}).FirstOrCreate(&g).Error
	return &g, err
}
