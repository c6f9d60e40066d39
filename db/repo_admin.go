package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AdminBorrowRow is a borrow record joined with user and book details for
// the admin borrow-requests table.
type AdminBorrowRow struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	BookID     string            `json:"bookId"`
	BorrowDate time.Time         `json:"borrowDate"`
	DueDate    time.Time         `json:"dueDate"`
	ReturnDate *time.Time        `json:"returnDate,omitempty"`
	Status     models.LoanStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`

	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	UniversityID int64  `json:"universityId"`

	BookTitle      string `json:"bookTitle"`
	BookAuthor     string `json:"bookAuthor"`
	BookCoverURL   string `json:"bookCoverUrl"`
	BookCoverColor string `json:"bookCoverColor"`

	Overdue bool `json:"overdue"`
}

type BorrowRequestsQuery struct {
	Q      string // matches user name/email or book title
	Status string // "", "borrowed", "returned", "overdue"
	Page   int
	Size   int
}

type PagedBorrowRequests struct {
	Total    int64            `json:"total"`
	Requests []AdminBorrowRow `json:"requests"`
}

const adminBorrowSelect = `
	br.id, br.user_id, br.book_id, br.borrow_date, br.due_date, br.return_date,
	br.status, br.created_at,
	u.full_name     AS user_name,
	u.email         AS user_email,
	u.university_id AS university_id,
	b.title         AS book_title,
	b.author        AS book_author,
	b.cover_url     AS book_cover_url,
	b.cover_color   AS book_cover_color,
	CASE WHEN br.status = 'BORROWED' AND br.due_date < ? THEN TRUE ELSE FALSE END AS overdue
`

func (r *Repo) adminBorrowBase(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.BorrowRecordTable+" br").
		Select(adminBorrowSelect, nowUTC()).
		Joins("LEFT JOIN " + models.UserTable + " u ON u.id = br.user_id").
		Joins("LEFT JOIN " + models.BookTable + " b ON b.id = br.book_id")
}

// ListBorrowRequests pages through all loans, newest first.
func (r *Repo) ListBorrowRequests(ctx context.Context, q BorrowRequestsQuery) (*PagedBorrowRequests, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}

	// Count on a plain joined query; the parameterized SELECT of the row
	// query does not survive Count cleanly.
	count := applyBorrowFilters(r.DB.WithContext(ctx).
		Table(models.BorrowRecordTable+" br").
		Joins("LEFT JOIN "+models.UserTable+" u ON u.id = br.user_id").
		Joins("LEFT JOIN "+models.BookTable+" b ON b.id = br.book_id"), q)

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []AdminBorrowRow
	if err := applyBorrowFilters(r.adminBorrowBase(ctx), q).
		Order("br.created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return &PagedBorrowRequests{Total: total, Requests: rows}, nil
}

func applyBorrowFilters(qry *gorm.DB, q BorrowRequestsQuery) *gorm.DB {
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		qry = qry.Where("LOWER(u.full_name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(b.title) LIKE ?",
			like, like, like)
	}
	switch q.Status {
	case "borrowed":
		qry = qry.Where("br.status = ?", models.LoanBorrowed)
	case "returned":
		qry = qry.Where("br.status = ?", models.LoanReturned)
	case "overdue":
		qry = qry.Where("br.status = ? AND br.due_date < ?", models.LoanBorrowed, nowUTC())
	}
	return qry
}

// BorrowReceipt returns the joined row for one record, for receipts.
func (r *Repo) BorrowReceipt(ctx context.Context, recordID string) (*AdminBorrowRow, error) {
	var row AdminBorrowRow
	err := r.adminBorrowBase(ctx).
		Where("br.id = ?", recordID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, ErrRecordNotFound
	}
	return &row, nil
}

// Dashboard

type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalBooks    int64 `json:"totalBooks"`
	BorrowedBooks int64 `json:"borrowedBooks"`
	PendingUsers  int64 `json:"pendingUsers"`
}

func (r *Repo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Book{}).Count(&s.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BorrowRecord{}).
		Where("status = ?", models.LoanBorrowed).
		Count(&s.BorrowedBooks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).
		Where("status = ?", models.StatusPending).
		Count(&s.PendingUsers).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// RecentBorrowRequests lists the latest still-active loans for the
// dashboard sidebar.
func (r *Repo) RecentBorrowRequests(ctx context.Context, limit int) ([]AdminBorrowRow, error) {
	if limit <= 0 || limit > 20 {
		limit = 3
	}
	var rows []AdminBorrowRow
	err := r.adminBorrowBase(ctx).
		Where("br.status = ?", models.LoanBorrowed).
		Order("br.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PendingAccountRequests lists the newest accounts waiting for approval.
func (r *Repo) PendingAccountRequests(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}
	var users []models.User
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
