package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminBorrowController struct{ *Srv }

func NewAdminBorrowController(s *Srv) *AdminBorrowController { return &AdminBorrowController{Srv: s} }

// GET /api/admin/borrow-requests?q=&status=&page=&size=
func (abc *AdminBorrowController) List(c *gin.Context) {
	q := db.BorrowRequestsQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"), // "", "borrowed", "returned", "overdue"
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := abc.Repo.ListBorrowRequests(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type setLoanStatusInput struct {
	Status models.LoanStatus `json:"status" binding:"required"`
}

// PATCH /api/admin/borrow-requests/:id/status — direct override of a
// record's BORROWED/RETURNED state with the matching availability
// adjustment applied exactly once.
func (abc *AdminBorrowController) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid record id"})
		return
	}

	var in setLoanStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	if !in.Status.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
		return
	}

	rec, err := abc.Repo.SetBorrowStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"record": rec})
}

// GET /api/admin/borrow-requests/:id/receipt
func (abc *AdminBorrowController) Receipt(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid record id"})
		return
	}

	row, err := abc.Repo.BorrowReceipt(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"receipt": row})
}

// GET /api/admin/dashboard
func (abc *AdminBorrowController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := abc.Repo.GetDashboardStats(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	recentLoans, err := abc.Repo.RecentBorrowRequests(ctx, 3)
	if err != nil {
		fail(c, err)
		return
	}
	pending, err := abc.Repo.PendingAccountRequests(ctx, 6)
	if err != nil {
		fail(c, err)
		return
	}
	recentBooks, err := abc.Repo.RecentBooks(ctx, 5)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, app.H{
		"stats":           stats,
		"recentBorrows":   recentLoans,
		"accountRequests": pending,
		"recentBooks":     recentBooks,
	})
}
