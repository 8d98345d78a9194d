package fine

import (
	"errors"
	"time"

	"library-backend/internal/domain/loan"
)

var (
	ErrNotFound    = errors.New("fine not found")
	ErrAlreadyPaid = errors.New("fine already paid")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) Valid() bool { return s == StatusPending || s == StatusPaid }

// Fine is the penalty for one late-returned loan. The unique index on loan_id
// keeps a loan from ever carrying two fines.
type Fine struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"id"`
	LoanID      uint64     `gorm:"column:loan_id;not null;uniqueIndex" json:"loanId"`
	Amount      float64    `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	GeneratedAt time.Time  `gorm:"column:generated_at;not null" json:"generatedAt"`
	Status      Status     `gorm:"column:status;size:16;not null;default:pending;index" json:"status"`
	PaidAt      *time.Time `gorm:"column:paid_at" json:"paidAt,omitempty"`

	Loan *loan.Loan `gorm:"foreignKey:LoanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Fine) TableName() string { return "fines" }
