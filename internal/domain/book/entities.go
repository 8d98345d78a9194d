package book

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("book not found")
	ErrISBNTaken = errors.New("isbn already cataloged")
	ErrHasCopies = errors.New("book still has copies")
)

type Publisher struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name    string `gorm:"column:name;size:200;not null;uniqueIndex" json:"name"`
	Contact string `gorm:"column:contact;size:255" json:"contact,omitempty"`
}

func (Publisher) TableName() string { return "publishers" }

type Author struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"id"`
	FirstName   string `gorm:"column:first_name;size:100;not null;uniqueIndex:ux_authors_name" json:"firstName"`
	LastName    string `gorm:"column:last_name;size:100;not null;uniqueIndex:ux_authors_name" json:"lastName"`
	Nationality string `gorm:"column:nationality;size:100" json:"nationality,omitempty"`
}

func (Author) TableName() string { return "authors" }

type Genre struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:100;not null;uniqueIndex" json:"name"`
}

func (Genre) TableName() string { return "genres" }

type Book struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"id"`
	Title       string     `gorm:"column:title;size:255;not null;index" json:"title"`
	ISBN        string     `gorm:"column:isbn;size:20;not null;uniqueIndex" json:"isbn"`
	PublisherID uint64     `gorm:"column:publisher_id;not null;index" json:"publisherId"`
	Publisher   *Publisher `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	Year        int        `gorm:"column:year" json:"year,omitempty"`
	Edition     string     `gorm:"column:edition;size:50" json:"edition,omitempty"`
	Pages       int        `gorm:"column:pages" json:"pages,omitempty"`
	Synopsis    string     `gorm:"column:synopsis;type:text" json:"synopsis,omitempty"`
	Authors     []Author   `gorm:"many2many:book_authors" json:"authors,omitempty"`
	Genres      []Genre    `gorm:"many2many:book_genres" json:"genres,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Book) TableName() string { return "books" }
