package bookcopy

import (
	"errors"
	"time"

	"library-backend/internal/domain/book"
)

var (
	ErrNotFound      = errors.New("copy not found")
	ErrNotAvailable  = errors.New("copy not available for loan")
	ErrHasActiveLoan = errors.New("copy has an active loan")
	ErrManualLoaned  = errors.New("copy status loaned is set only by issuing a loan")
	ErrHasHistory    = errors.New("copy has loan history")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusLoaned      Status = "loaned"
	StatusMaintenance Status = "maintenance"
	StatusLost        Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusMaintenance, StatusLost:
		return true
	}
	return false
}

// Copy is one physical exemplar of a cataloged book.
type Copy struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	BookID       uint64    `gorm:"column:book_id;not null;index" json:"bookId"`
	LocationCode string    `gorm:"column:location_code;size:64;not null" json:"locationCode"`
	Status       Status    `gorm:"column:status;size:16;not null;default:available;index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Book *book.Book `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Copy) TableName() string { return "copies" }
