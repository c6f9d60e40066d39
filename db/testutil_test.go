package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens a fresh in-memory SQLite database. A single connection
// keeps every query on the same in-memory instance.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	return NewRepo(gdb)
}

func seedUser(t *testing.T, r *Repo, status models.UserStatus) *models.User {
	t.Helper()
	u := &models.User{
		ID:             uuid.NewString(),
		FullName:       "Test Student",
		Email:          uuid.NewString() + "@university.edu",
		Password:       "$2a$10$notarealhashnotarealhashnotarealhash",
		UniversityID:   12345,
		UniversityCard: "cards/test.png",
		Status:         status,
		Role:           models.RoleUser,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedBook(t *testing.T, r *Repo, title string, total, available int) *models.Book {
	t.Helper()
	b := &models.Book{
		ID:              uuid.NewString(),
		Title:           title,
		Author:          "Some Author",
		Genre:           "Fiction",
		Description:     "A book used in tests.",
		Rating:          3,
		CoverColor:      "#aabbcc",
		CoverURL:        "covers/test.png",
		Summary:         "A summary long enough.",
		TotalCopies:     total,
		AvailableCopies: available,
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}

func bookAvailability(t *testing.T, r *Repo, bookID string) (available, total int) {
	t.Helper()
	b, err := r.FindBookByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.AvailableCopies, b.TotalCopies
}

// requireInvariant asserts 0 <= available <= total for one book.
func requireInvariant(t *testing.T, r *Repo, bookID string) {
	t.Helper()
	available, total := bookAvailability(t, r, bookID)
	require.GreaterOrEqual(t, available, 0)
	require.LessOrEqual(t, available, total)
}

func countRecords(t *testing.T, r *Repo, userID, bookID string, status models.LoanStatus) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Model(&models.BorrowRecord{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, status).
		Count(&n).Error)
	return n
}

func withCreatedAt(t *testing.T, r *Repo, b *models.Book, ts time.Time) {
	t.Helper()
	require.NoError(t, r.DB.Model(&models.Book{}).
		Where("id = ?", b.ID).
		Update("created_at", ts).Error)
}
