package mysql

import (
	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/fine"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
	"library-backend/internal/domain/reservation"

	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&book.Publisher{},
		&book.Author{},
		&book.Genre{},
		&book.Book{},
		&bookcopy.Copy{},
		&member.Member{},
		&loan.Loan{},
		&fine.Fine{},
		&reservation.Reservation{},
	}
}

// Migrate creates or updates the schema. It is idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
