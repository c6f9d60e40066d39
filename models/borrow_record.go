package models

import "time"

const BorrowRecordTable = "lib_borrow_records"

// LoanPeriod is the fixed window between borrow date and due date.
const LoanPeriod = 7 * 24 * time.Hour

type LoanStatus string

const (
	LoanBorrowed LoanStatus = "BORROWED"
	LoanReturned LoanStatus = "RETURNED"
)

// BorrowRecord is one loan of one book copy to one user. A partial unique
// index (user_id, book_id) WHERE status = 'BORROWED' guarantees at most one
// active record per pair; see db.Migrate.
type BorrowRecord struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string     `gorm:"type:uuid;index;not null" json:"userId"`
	BookID     string     `gorm:"type:uuid;index;not null" json:"bookId"`
	BorrowDate time.Time  `gorm:"not null" json:"borrowDate"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     LoanStatus `gorm:"size:20;not null;default:'BORROWED';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BorrowRecord) TableName() string { return BorrowRecordTable }

func (s LoanStatus) Valid() bool {
	return s == LoanBorrowed || s == LoanReturned
}
