package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func nowUTC() time.Time { return time.Now().UTC() }

// BorrowBook creates an active loan and takes one copy, as a single
// transaction. The availability check rides on the conditional decrement
// (UPDATE ... WHERE available_copies > 0) instead of a prior read, and the
// partial unique index rejects a second active record for the same pair, so
// two concurrent borrows of the last copy cannot both succeed.
func (r *Repo) BorrowBook(ctx context.Context, userID, bookID string) (*models.BorrowRecord, error) {
	var rec *models.BorrowRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		if u.Status != models.StatusApproved {
			return ErrNotEligible
		}

		var n int64
		if err := tx.Model(&models.Book{}).Where("id = ?", bookID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrBookNotFound
		}

		now := nowUTC()
		l := &models.BorrowRecord{
			ID:         uuid.NewString(),
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    now.Add(models.LoanPeriod),
			Status:     models.LoanBorrowed,
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBorrowed
			}
			return err
		}

		res := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", bookID).
			Update("available_copies", gorm.Expr("available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotAvailable
		}

		rec = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ReturnBook closes the active loan for (user, book) and gives the copy
// back. Both updates are conditional, so a second return finds no BORROWED
// row and fails without touching the counter.
func (r *Repo) ReturnBook(ctx context.Context, userID, bookID string) (*models.BorrowRecord, error) {
	var rec models.BorrowRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND book_id = ? AND status = ?",
			userID, bookID, models.LoanBorrowed).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveBorrow
			}
			return err
		}

		// Status guard: if another return slipped in between the read and
		// this update, zero rows change and no copy is given back twice.
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status = ?", rec.ID, models.LoanBorrowed).
			Updates(map[string]interface{}{
				"status":      models.LoanReturned,
				"return_date": nowUTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveBorrow
		}

		if err := giveBackCopy(tx, bookID); err != nil {
			return err
		}

		return tx.First(&rec, "id = ?", rec.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetBorrowStatus is the admin override for a record's BORROWED/RETURNED
// state. The availability adjustment is applied exactly once per real
// transition: into RETURNED frees a copy, out of RETURNED takes one again.
// Setting the current status is a no-op.
func (r *Repo) SetBorrowStatus(ctx context.Context, recordID string, status models.LoanStatus) (*models.BorrowRecord, error) {
	var rec models.BorrowRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", recordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if rec.Status == status {
			return nil
		}

		update := map[string]interface{}{"status": status}
		if status == models.LoanReturned {
			update["return_date"] = nowUTC()
		} else {
			// Re-opening a loan; the record is active again.
			update["return_date"] = nil
		}

		// Guard on the previous status so a concurrent override cannot
		// double-apply the counter adjustment.
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status = ?", recordID, rec.Status).
			Updates(update)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBorrowed
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		if status == models.LoanReturned {
			if err := giveBackCopy(tx, rec.BookID); err != nil {
				return err
			}
		} else {
			take := tx.Model(&models.Book{}).
				Where("id = ? AND available_copies > 0", rec.BookID).
				Update("available_copies", gorm.Expr("available_copies - 1"))
			if take.Error != nil {
				return take.Error
			}
			if take.RowsAffected == 0 {
				return ErrNotAvailable
			}
		}

		return tx.First(&rec, "id = ?", recordID).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// giveBackCopy increments availability, capped at total_copies. The cap only
// matters when total_copies was edited below the number of copies out on
// loan; the invariant 0 <= available <= total holds either way.
func giveBackCopy(tx *gorm.DB, bookID string) error {
	return tx.Model(&models.Book{}).
		Where("id = ? AND available_copies < total_copies", bookID).
		Update("available_copies", gorm.Expr("available_copies + 1")).Error
}

func findUser(tx *gorm.DB, userID string) (*models.User, error) {
	var u models.User
	if err := tx.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UserLoanRow is a borrow record joined with its book, for the profile page.
type UserLoanRow struct {
	ID         string            `json:"id"`
	BookID     string            `json:"bookId"`
	BorrowDate time.Time         `json:"borrowDate"`
	DueDate    time.Time         `json:"dueDate"`
	ReturnDate *time.Time        `json:"returnDate,omitempty"`
	Status     models.LoanStatus `json:"status"`

	BookTitle      string `json:"bookTitle"`
	BookAuthor     string `json:"bookAuthor"`
	BookGenre      string `json:"bookGenre"`
	BookCoverURL   string `json:"bookCoverUrl"`
	BookCoverColor string `json:"bookCoverColor"`

	Overdue bool `json:"overdue"`
}

// ListUserLoans returns a user's loans, newest first. status filters on
// "borrowed" / "returned"; anything else means all.
func (r *Repo) ListUserLoans(ctx context.Context, userID, status string) ([]UserLoanRow, error) {
	q := r.DB.WithContext(ctx).
		Table(models.BorrowRecordTable+" br").
		Select(`
			br.id, br.book_id, br.borrow_date, br.due_date, br.return_date, br.status,
			b.title        AS book_title,
			b.author       AS book_author,
			b.genre        AS book_genre,
			b.cover_url    AS book_cover_url,
			b.cover_color  AS book_cover_color,
			CASE WHEN br.status = 'BORROWED' AND br.due_date < ? THEN TRUE ELSE FALSE END AS overdue
		`, nowUTC()).
		Joins("JOIN "+models.BookTable+" b ON b.id = br.book_id").
		Where("br.user_id = ?", userID).
		Order("br.borrow_date DESC")

	switch status {
	case "borrowed":
		q = q.Where("br.status = ?", models.LoanBorrowed)
	case "returned":
		q = q.Where("br.status = ?", models.LoanReturned)
	}

	var rows []UserLoanRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
