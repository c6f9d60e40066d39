package controllers

import (
	"net/http"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminBookController struct{ *Srv }

func NewAdminBookController(s *Srv) *AdminBookController { return &AdminBookController{Srv: s} }

type bookInput struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Author      string `json:"author" binding:"required,min=2,max=100"`
	Genre       string `json:"genre" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"required,min=10,max=1000"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	CoverColor  string `json:"coverColor" binding:"required,hexcolor"`
	CoverURL    string `json:"coverUrl" binding:"required"`
	VideoURL    string `json:"videoUrl" binding:"omitempty"`
	Summary     string `json:"summary" binding:"required,min=10"`
	TotalCopies int    `json:"totalCopies" binding:"required,gt=0,lte=10000"`
}

// POST /api/admin/books — new books start with every copy available.
func (abc *AdminBookController) Create(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	b := &models.Book{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Author:          in.Author,
		Genre:           in.Genre,
		Description:     in.Description,
		Rating:          in.Rating,
		CoverColor:      in.CoverColor,
		CoverURL:        in.CoverURL,
		VideoURL:        in.VideoURL,
		Summary:         in.Summary,
		TotalCopies:     in.TotalCopies,
		AvailableCopies: in.TotalCopies,
	}
	if err := abc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"book": b})
}

// PUT /api/admin/books/:id
func (abc *AdminBookController) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid book id"})
		return
	}

	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	b, err := abc.Repo.UpdateBook(c.Request.Context(), id, db.UpdateBookInput{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       in.Genre,
		Description: in.Description,
		Rating:      in.Rating,
		CoverColor:  in.CoverColor,
		CoverURL:    in.CoverURL,
		VideoURL:    in.VideoURL,
		Summary:     in.Summary,
		TotalCopies: in.TotalCopies,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"book": b})
}

// DELETE /api/admin/books/:id
func (abc *AdminBookController) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid book id"})
		return
	}
	if err := abc.Repo.DeleteBook(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
