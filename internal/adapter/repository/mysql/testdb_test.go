package mysql

import (
	"testing"
	"time"

	"library-backend/internal/domain/book"
	"library-backend/internal/domain/bookcopy"
	"library-backend/internal/domain/member"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// One connection only: every pooled connection would otherwise get its own empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDSN(t, ":memory:")
}

func openTestDSN(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func seedBook(t *testing.T, db *gorm.DB, title, isbn string) *book.Book {
	t.Helper()
	p := &book.Publisher{Name: "Pub " + isbn}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed publisher: %v", err)
	}
	b := &book.Book{Title: title, ISBN: isbn, PublisherID: p.ID, Year: 2001}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedCopy(t *testing.T, db *gorm.DB, bookID uint64, status bookcopy.Status) *bookcopy.Copy {
	t.Helper()
	c := &bookcopy.Copy{BookID: bookID, LocationCode: "A-1", Status: status}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed copy: %v", err)
	}
	return c
}

func seedMember(t *testing.T, db *gorm.DB, email string, status member.Status) *member.Member {
	t.Helper()
	m := &member.Member{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		RegisteredAt: day(2023, 1, 1),
		Status:       status,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}
