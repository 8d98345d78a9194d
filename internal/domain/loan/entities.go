package loan

import (
	"errors"
	"time"

	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/member"
	"library-backend/pkg/calendar"
)

var (
	ErrNotFound        = errors.New("loan not found")
	ErrAlreadyReturned = errors.New("loan already returned")
	ErrInvalidInput    = errors.New("invalid loan input")
)

// Status is derived at read time and never stored.
type Status string

const (
	StatusActive   Status = "active"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

type Loan struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"id"`
	CopyID     uint64     `gorm:"column:copy_id;not null;index:idx_loans_copy_active" json:"copyId"`
	MemberID   uint64     `gorm:"column:member_id;not null;index" json:"memberId"`
	LoanedAt   time.Time  `gorm:"column:loaned_at;not null" json:"loanedAt"`
	DueDate    time.Time  `gorm:"column:due_date;type:date;not null;index" json:"dueDate"`
	ReturnedAt *time.Time `gorm:"column:returned_at;index:idx_loans_copy_active" json:"returnedAt,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"-"`

	// schema only: foreign keys to the borrowed copy and the borrower
	Copy   *bookcopy.Copy `gorm:"foreignKey:CopyID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Member *member.Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) IsActive() bool { return l.ReturnedAt == nil }

// StatusAt derives the display status at instant now. Due dates are calendar
// dates, so a loan is overdue only from the day after its due date in loc.
func (l *Loan) StatusAt(now time.Time, loc *time.Location) Status {
	switch {
	case l.ReturnedAt != nil:
		return StatusReturned
	case calendar.DaysPast(l.DueDate, now, loc) > 0:
		return StatusOverdue
	default:
		return StatusActive
	}
}
