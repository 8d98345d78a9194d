package reservation

import (
	"errors"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/member"
)

var (
	ErrNotFound  = errors.New("reservation not found")
	ErrNotActive = errors.New("reservation not active")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusFulfilled Status = "fulfilled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusFulfilled:
		return true
	}
	return false
}

// Reservation is a member's claim on the next free copy of a book.
// NotifiedAt is stamped when a copy of the book comes back.
type Reservation struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"id"`
	BookID     uint64     `gorm:"column:book_id;not null;index:idx_reservations_book_status" json:"bookId"`
	MemberID   uint64     `gorm:"column:member_id;not null;index" json:"memberId"`
	ReservedAt time.Time  `gorm:"column:reserved_at;not null" json:"reservedAt"`
	Status     Status     `gorm:"column:status;size:16;not null;default:active;index:idx_reservations_book_status" json:"status"`
	NotifiedAt *time.Time `gorm:"column:notified_at" json:"notifiedAt,omitempty"`

	Book   *book.Book     `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Member *member.Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Reservation) TableName() string { return "reservations" }
