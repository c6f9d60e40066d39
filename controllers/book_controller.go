package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// GET /api/books?query=&genre=&availability=&sort=&page=&size=
func (bc *BookController) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	q := db.SearchQuery{
		Query:        c.Query("query"),
		Genre:        c.Query("genre"),
		Availability: c.Query("availability"),
		SortBy:       c.DefaultQuery("sort", db.SortRelevance),
		Page:         page,
		Size:         size,
	}

	res, err := bc.Repo.SearchBooks(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/books/genres
func (bc *BookController) Genres(c *gin.Context) {
	genres, err := bc.Repo.ListGenres(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"genres": genres})
}

// GET /api/books/popular?limit=
func (bc *BookController) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	books, err := bc.Repo.PopularBooks(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}

// GET /api/books/:id
func (bc *BookController) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid book id"})
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"book": b})
}

// GET /api/books/:id/related?limit=
func (bc *BookController) Related(c *gin.Context) {
	id := c.Param("id")
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	books, err := bc.Repo.RelatedBooks(c.Request.Context(), b.ID, b.Genre, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}

// POST /api/books/:id/borrow
func (bc *BookController) Borrow(c *gin.Context) {
	uid, ok := app.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	bookID := c.Param("id")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing book id"})
		return
	}

	rec, err := bc.Repo.BorrowBook(c.Request.Context(), uid, bookID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"record": rec})
}

// POST /api/books/:id/return
func (bc *BookController) Return(c *gin.Context) {
	uid, ok := app.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	bookID := c.Param("id")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing book id"})
		return
	}

	rec, err := bc.Repo.ReturnBook(c.Request.Context(), uid, bookID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"record": rec})
}

// GET /api/me/loans?status=borrowed|returned
func (bc *BookController) MyLoans(c *gin.Context) {
	uid, ok := app.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	rows, err := bc.Repo.ListUserLoans(c.Request.Context(), uid, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": rows})
}
