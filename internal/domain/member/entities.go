package member

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("member not found")
	ErrNotActive  = errors.New("member not active")
	ErrEmailTaken = errors.New("member email already registered")
	ErrHasLoans   = errors.New("member has active loans")
	ErrHasHistory = errors.New("member has loan history")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

type Member struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	FirstName    string     `gorm:"column:first_name;size:100;not null" json:"firstName"`
	LastName     string     `gorm:"column:last_name;size:100;not null" json:"lastName"`
	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Phone        string     `gorm:"column:phone;size:32" json:"phone,omitempty"`
	Address      string     `gorm:"column:address;size:255" json:"address,omitempty"`
	BirthDate    *time.Time `gorm:"column:birth_date;type:date" json:"birthDate,omitempty"`
	RegisteredAt time.Time  `gorm:"column:registered_at;not null" json:"registeredAt"`
	Status       Status     `gorm:"column:status;size:16;not null;default:active" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Member) TableName() string { return "members" }

// CanBorrow reports whether the member may originate new loans.
func (m *Member) CanBorrow() bool { return m.Status == StatusActive }

func (m *Member) FullName() string { return m.FirstName + " " + m.LastName }
