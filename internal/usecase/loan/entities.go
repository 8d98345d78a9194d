package loan

import (
	"time"
)

type CreateLoanInput struct {
	CopyID   uint64
	MemberID uint64
	// nil means issue date + loan period
	DueDate *time.Time
}

type CreatedLoanDTO struct {
	LoanID  uint64 `json:"loanId"`
	DueDate string `json:"dueDate"`
}

type ReturnLoanDTO struct {
	LoanID        uint64    `json:"loanId"`
	ReturnedAt    time.Time `json:"returnedAt"`
	OverdueDays   int       `json:"overdueDays"`
	FineGenerated bool      `json:"fineGenerated"`
	FineID        *uint64   `json:"fineId,omitempty"`
	FineAmount    *float64  `json:"fineAmount,omitempty"`
}

// LoanDTO is the read model. OverdueDays counts up to the return for returned
// loans and up to now for open ones; ProjectedFine is only set for open loans.
type LoanDTO struct {
	ID            uint64     `json:"id"`
	CopyID        uint64     `json:"copyId"`
	MemberID      uint64     `json:"memberId"`
	LoanedAt      time.Time  `json:"loanedAt"`
	DueDate       string     `json:"dueDate"`
	ReturnedAt    *time.Time `json:"returnedAt,omitempty"`
	Status        string     `json:"status"`
	OverdueDays   int        `json:"overdueDays"`
	ProjectedFine float64    `json:"projectedFine"`
}

type ListInput struct {
	Status   string
	MemberID uint64
}
