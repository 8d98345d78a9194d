// Package report holds the read models of the circulation reports. Rows come
// straight from aggregate queries; nothing here is ever written back.
package report

import "time"

type BookLoanCount struct {
	BookID    uint64 `db:"book_id" json:"bookId"`
	Title     string `db:"title" json:"title"`
	ISBN      string `db:"isbn" json:"isbn"`
	LoanCount int64  `db:"loan_count" json:"loanCount"`
}

// OverdueLoan is an unreturned loan whose due date is before the reference day.
// Days and projected fine are filled in by the caller.
type OverdueLoan struct {
	LoanID          uint64    `db:"loan_id" json:"loanId"`
	CopyID          uint64    `db:"copy_id" json:"copyId"`
	BookID          uint64    `db:"book_id" json:"bookId"`
	Title           string    `db:"title" json:"title"`
	MemberID        uint64    `db:"member_id" json:"memberId"`
	MemberFirstName string    `db:"first_name" json:"memberFirstName"`
	MemberLastName  string    `db:"last_name" json:"memberLastName"`
	MemberEmail     string    `db:"email" json:"memberEmail"`
	LoanedAt        time.Time `db:"loaned_at" json:"loanedAt"`
	DueDate         time.Time `db:"due_date" json:"dueDate"`
	OverdueDays     int       `db:"-" json:"overdueDays"`
	ProjectedFine   float64   `db:"-" json:"projectedFine"`
}

type Availability struct {
	BookID      uint64 `db:"book_id" json:"bookId"`
	Title       string `db:"title" json:"title"`
	Total       int64  `db:"total" json:"total"`
	Available   int64  `db:"available" json:"available"`
	Loaned      int64  `db:"loaned" json:"loaned"`
	Maintenance int64  `db:"maintenance" json:"maintenance"`
	Lost        int64  `db:"lost" json:"lost"`
}

type Book struct {
	BookID uint64 `db:"book_id" json:"bookId"`
	Title  string `db:"title" json:"title"`
	ISBN   string `db:"isbn" json:"isbn"`
}

type AuthorLoanCount struct {
	AuthorID  uint64 `db:"author_id" json:"authorId"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	LoanCount int64  `db:"loan_count" json:"loanCount"`
}

type GenreLoanCount struct {
	GenreID   uint64 `db:"genre_id" json:"genreId"`
	Name      string `db:"name" json:"name"`
	LoanCount int64  `db:"loan_count" json:"loanCount"`
}

type MemberLoanCount struct {
	MemberID  uint64 `db:"member_id" json:"memberId"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	LoanCount int64  `db:"loan_count" json:"loanCount"`
}

// HistoryEntry is one loan of a member with its fine, if any.
// Status is derived by the caller.
type HistoryEntry struct {
	LoanID     uint64     `db:"loan_id" json:"loanId"`
	CopyID     uint64     `db:"copy_id" json:"copyId"`
	BookID     uint64     `db:"book_id" json:"bookId"`
	Title      string     `db:"title" json:"title"`
	LoanedAt   time.Time  `db:"loaned_at" json:"loanedAt"`
	DueDate    time.Time  `db:"due_date" json:"dueDate"`
	ReturnedAt *time.Time `db:"returned_at" json:"returnedAt,omitempty"`
	FineID     *uint64    `db:"fine_id" json:"fineId,omitempty"`
	FineAmount *float64   `db:"fine_amount" json:"fineAmount,omitempty"`
	FineStatus *string    `db:"fine_status" json:"fineStatus,omitempty"`
	FinePaidAt *time.Time `db:"fine_paid_at" json:"finePaidAt,omitempty"`
	Status     string     `db:"-" json:"status"`
}

type PendingFine struct {
	FineID          uint64    `db:"fine_id" json:"fineId"`
	LoanID          uint64    `db:"loan_id" json:"loanId"`
	MemberID        uint64    `db:"member_id" json:"memberId"`
	MemberFirstName string    `db:"first_name" json:"memberFirstName"`
	MemberLastName  string    `db:"last_name" json:"memberLastName"`
	MemberEmail     string    `db:"email" json:"memberEmail"`
	Amount          float64   `db:"amount" json:"amount"`
	GeneratedAt     time.Time `db:"generated_at" json:"generatedAt"`
}

type FineTotal struct {
	Status string  `db:"status" json:"status"`
	Count  int64   `db:"fine_count" json:"count"`
	Total  float64 `db:"total" json:"total"`
}
