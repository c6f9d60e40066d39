package db

import (
	"Gin_postgres_redis_library_system/models"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogEntry struct {
	title     string
	author    string
	genre     string
	rating    int
	total     int
	available int
	age       time.Duration // how long ago the book was added
}

func seedCatalog(t *testing.T, r *Repo, entries []catalogEntry) {
	t.Helper()
	now := time.Now().UTC()
	for _, e := range entries {
		b := &models.Book{
			ID:              uuid.NewString(),
			Title:           e.title,
			Author:          e.author,
			Genre:           e.genre,
			Description:     "About " + e.title + ".",
			Rating:          e.rating,
			CoverColor:      "#112233",
			CoverURL:        "covers/x.png",
			Summary:         "Summary of " + e.title + ".",
			TotalCopies:     e.total,
			AvailableCopies: e.available,
		}
		require.NoError(t, r.CreateBook(context.Background(), b))
		withCreatedAt(t, r, b, now.Add(-e.age))
	}
}

func titles(res *SearchResult) []string {
	out := make([]string, 0, len(res.Books))
	for _, b := range res.Books {
		out = append(out, b.Title)
	}
	return out
}

func defaultCatalog() []catalogEntry {
	return []catalogEntry{
		{"Cracking the Coding Interview", "Gayle Laakmann McDowell", "Technology", 5, 3, 2, 72 * time.Hour},
		{"War and Peace", "Leo Tolstoy", "Fiction", 4, 2, 0, 48 * time.Hour},
		{"Anna Karenina", "Leo Tolstoy", "Fiction", 5, 2, 1, 24 * time.Hour},
		{"The Pragmatic Programmer", "Andrew Hunt", "Technology", 4, 1, 1, 12 * time.Hour},
		{"Dune", "Frank Herbert", "Science Fiction", 3, 4, 4, 6 * time.Hour},
	}
}

func TestSearchBooks_FreeText(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, defaultCatalog())

	res, err := r.SearchBooks(ctx, SearchQuery{Query: "interview"})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, []string{"Cracking the Coding Interview"}, titles(res))

	// Author matches count too, case-insensitively.
	res, err = r.SearchBooks(ctx, SearchQuery{Query: "TOLSTOY"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = r.SearchBooks(ctx, SearchQuery{Query: "no such book"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Books)
}

func TestSearchBooks_Filters(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, defaultCatalog())

	res, err := r.SearchBooks(ctx, SearchQuery{Genre: "Fiction"})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	for _, b := range res.Books {
		assert.Equal(t, "Fiction", b.Genre)
	}

	// "all" is the no-filter sentinel.
	res, err = r.SearchBooks(ctx, SearchQuery{Genre: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)

	res, err = r.SearchBooks(ctx, SearchQuery{Availability: "available"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)

	res, err = r.SearchBooks(ctx, SearchQuery{Availability: "unavailable"})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "War and Peace", res.Books[0].Title)

	// Filters AND together.
	res, err = r.SearchBooks(ctx, SearchQuery{Query: "tolstoy", Availability: "available"})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Anna Karenina", res.Books[0].Title)
}

func TestSearchBooks_Sorting(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, defaultCatalog())

	res, err := r.SearchBooks(ctx, SearchQuery{SortBy: SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Dune",
		"The Pragmatic Programmer",
		"Anna Karenina",
		"War and Peace",
		"Cracking the Coding Interview",
	}, titles(res))

	res, err = r.SearchBooks(ctx, SearchQuery{SortBy: SortOldest})
	require.NoError(t, err)
	assert.Equal(t, "Cracking the Coding Interview", res.Books[0].Title)

	res, err = r.SearchBooks(ctx, SearchQuery{SortBy: SortTitleAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Anna Karenina",
		"Cracking the Coding Interview",
		"Dune",
		"The Pragmatic Programmer",
		"War and Peace",
	}, titles(res))

	// rating_desc breaks ties on title.
	res, err = r.SearchBooks(ctx, SearchQuery{SortBy: SortRatingDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Anna Karenina",
		"Cracking the Coding Interview",
		"The Pragmatic Programmer",
		"War and Peace",
		"Dune",
	}, titles(res))

	// Relevance without a query: rating desc, then newest.
	res, err = r.SearchBooks(ctx, SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Anna Karenina",
		"Cracking the Coding Interview",
		"The Pragmatic Programmer",
		"War and Peace",
		"Dune",
	}, titles(res))

	// Unknown sort keys fall back to relevance.
	fallback, err := r.SearchBooks(ctx, SearchQuery{SortBy: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, titles(res), titles(fallback))
}

func TestSearchBooks_Pagination(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	seedCatalog(t, r, defaultCatalog())

	page1, err := r.SearchBooks(ctx, SearchQuery{SortBy: SortTitleAsc, Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page1.Total)
	assert.Equal(t, 3, page1.TotalPages) // ceil(5/2)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, []string{"Anna Karenina", "Cracking the Coding Interview"}, titles(page1))

	page3, err := r.SearchBooks(ctx, SearchQuery{SortBy: SortTitleAsc, Page: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"War and Peace"}, titles(page3))

	// Out-of-range pages are empty but keep the metadata.
	page9, err := r.SearchBooks(ctx, SearchQuery{SortBy: SortTitleAsc, Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page9.Books)
	assert.Equal(t, int64(5), page9.Total)

	// Nonsense paging input falls back to defaults.
	res, err := r.SearchBooks(ctx, SearchQuery{Page: -1, Size: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Books, 5)
}
