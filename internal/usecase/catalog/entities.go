package catalog

import (
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
)

type AuthorInput struct {
	FirstName string
	LastName  string
}

type BookInput struct {
	Title     string
	ISBN      string
	Publisher string
	Year      int
	Edition   string
	Pages     int
	Synopsis  string
	Authors   []AuthorInput
	Genres    []string
}

// BookDTO is a book with its copy counts per status.
type BookDTO struct {
	book.Book
	Copies map[bookcopy.Status]int64 `json:"copies"`
}

type MemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	BirthDate *time.Time
	// Status is read by UpdateMember only; registration always starts active.
	Status string
}

type CopyFilter struct {
	BookID uint64
	Status string
}
