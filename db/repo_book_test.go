package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBook_CopyAccounting(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	u := seedUser(t, r, models.StatusApproved)
	b := seedBook(t, r, "Refactoring", 3, 3)

	// One copy goes out on loan.
	_, err := r.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	edit := UpdateBookInput{
		Title: "Refactoring", Author: "Martin Fowler", Genre: "Technology",
		Description: "d", Rating: 5, CoverColor: "#aabbcc", CoverURL: "c", Summary: "s",
	}

	// Growing the stock grows availability by the same delta.
	edit.TotalCopies = 5
	got, err := r.UpdateBook(ctx, b.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalCopies)
	assert.Equal(t, 4, got.AvailableCopies)

	// Shrinking below the on-loan count clamps availability at zero.
	edit.TotalCopies = 1
	got, err = r.UpdateBook(ctx, b.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalCopies)
	assert.Equal(t, 0, got.AvailableCopies)
	requireInvariant(t, r, b.ID)

	_, err = r.UpdateBook(ctx, uuid.NewString(), edit)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	u := seedUser(t, r, models.StatusApproved)
	b := seedBook(t, r, "Clean Code", 1, 1)

	_, err := r.BorrowBook(ctx, u.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, r.DeleteBook(ctx, b.ID))
	_, err = r.FindBookByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Zero(t, countRecords(t, r, u.ID, b.ID, models.LoanBorrowed))

	assert.ErrorIs(t, r.DeleteBook(ctx, b.ID), ErrBookNotFound)
}

func TestListGenres(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, []catalogEntry{
		{"A", "a", "Fiction", 3, 1, 1, 0},
		{"B", "b", "Fiction", 3, 1, 1, 0},
		{"C", "c", "Technology", 3, 1, 1, 0},
		{"D", "d", "Poetry", 3, 0, 0, 0}, // no stock, hidden
	})

	genres, err := r.ListGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction", "Technology"}, genres)
}

func TestPopularAndRelatedBooks(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, defaultCatalog())

	popular, err := r.PopularBooks(ctx, 3)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	// Best rated first; War and Peace has no free copies and is skipped.
	assert.Equal(t, "Anna Karenina", popular[0].Title)
	for _, b := range popular {
		assert.Positive(t, b.AvailableCopies)
		assert.NotEqual(t, "War and Peace", b.Title)
	}

	anna, err := r.FindBookByID(ctx, popular[0].ID)
	require.NoError(t, err)
	related, err := r.RelatedBooks(ctx, anna.ID, anna.Genre, 6)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "War and Peace", related[0].Title)
}
