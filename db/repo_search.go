package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

// Sort keys accepted by SearchBooks. Anything else falls back to relevance.
const (
	SortRelevance  = "relevance"
	SortTitleAsc   = "title_asc"
	SortTitleDesc  = "title_desc"
	SortAuthorAsc  = "author_asc"
	SortRatingDesc = "rating_desc"
	SortRatingAsc  = "rating_asc"
	SortNewest     = "newest"
	SortOldest     = "oldest"
)

type SearchQuery struct {
	Query        string // free text over title/author/genre/description/summary
	Genre        string // exact match; "" or "all" = any
	Availability string // "available", "unavailable", "" or "all" = any
	SortBy       string
	Page         int
	Size         int
}

type SearchResult struct {
	Books      []models.Book `json:"books"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
}

// SearchBooks composes every optional filter into one query plus a matching
// count. Filters AND together; the free-text match ORs over its columns.
func (r *Repo) SearchBooks(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Book{})

	text := strings.TrimSpace(q.Query)
	if text != "" {
		like := "%" + strings.ToLower(text) + "%"
		tx = tx.Where(
			`LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(genre) LIKE ?
			 OR LOWER(description) LIKE ? OR LOWER(summary) LIKE ?`,
			like, like, like, like, like)
	}

	if g := strings.TrimSpace(q.Genre); g != "" && g != "all" {
		tx = tx.Where("genre = ?", g)
	}

	switch q.Availability {
	case "available":
		tx = tx.Where("available_copies > 0")
	case "unavailable":
		tx = tx.Where("available_copies = 0")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var books []models.Book
	if err := applySort(tx, q.SortBy, text != "").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&books).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return &SearchResult{
		Books:      books,
		Total:      total,
		TotalPages: totalPages,
		Page:       q.Page,
	}, nil
}

func applySort(tx *gorm.DB, sortBy string, hasQuery bool) *gorm.DB {
	switch sortBy {
	case SortTitleAsc:
		return tx.Order("title ASC")
	case SortTitleDesc:
		return tx.Order("title DESC")
	case SortAuthorAsc:
		return tx.Order("author ASC")
	case SortRatingDesc:
		return tx.Order("rating DESC, title ASC")
	case SortRatingAsc:
		return tx.Order("rating ASC, title ASC")
	case SortNewest:
		return tx.Order("created_at DESC")
	case SortOldest:
		return tx.Order("created_at ASC")
	default:
		// Relevance: with a text query rank by rating then title; when just
		// browsing, best rated first, newest as tiebreak.
		if hasQuery {
			return tx.Order("rating DESC, title ASC")
		}
		return tx.Order("rating DESC, created_at DESC")
	}
}
