package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateBookInput is an admin edit. TotalCopies changes shift
// AvailableCopies by the same delta so copies out on loan stay accounted
// for; the result is clamped into [0, total].
type UpdateBookInput struct {
	Title       string
	Author      string
	Genre       string
	Description string
	Rating      int
	CoverColor  string
	CoverURL    string
	VideoURL    string
	Summary     string
	TotalCopies int
}

func (r *Repo) UpdateBook(ctx context.Context, id string, in UpdateBookInput) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		onLoan := b.TotalCopies - b.AvailableCopies
		available := in.TotalCopies - onLoan
		if available < 0 {
			available = 0
		}
		if available > in.TotalCopies {
			available = in.TotalCopies
		}

		return tx.Model(&models.Book{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":            in.Title,
			"author":           in.Author,
			"genre":            in.Genre,
			"description":      in.Description,
			"rating":           in.Rating,
			"cover_color":      in.CoverColor,
			"cover_url":        in.CoverURL,
			"video_url":        in.VideoURL,
			"summary":          in.Summary,
			"total_copies":     in.TotalCopies,
			"available_copies": available,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindBookByID(ctx, id)
}

// DeleteBook removes the book and its borrow history.
func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.BorrowRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Book{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return nil
	})
}

// ListGenres feeds the search filter dropdown.
func (r *Repo) ListGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Distinct("genre").
		Where("total_copies > 0").
		Order("genre ASC").
		Pluck("genre", &genres).Error
	return genres, err
}

// PopularBooks lists the highest-rated books that can be borrowed right now.
func (r *Repo) PopularBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("available_copies > 0").
		Order("rating DESC, created_at DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// RelatedBooks lists other books of the same genre, best rated first.
func (r *Repo) RelatedBooks(ctx context.Context, bookID, genre string, limit int) ([]models.Book, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("genre = ? AND id <> ? AND total_copies > 0", genre, bookID).
		Order("rating DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *Repo) RecentBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}
