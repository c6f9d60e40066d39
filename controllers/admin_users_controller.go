package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminUserController struct{ *Srv }

func NewAdminUserController(s *Srv) *AdminUserController { return &AdminUserController{Srv: s} }

// GET /api/admin/users?q=&status=&page=&size=
func (auc *AdminUserController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	status := models.UserStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
		return
	}

	res, err := auc.Repo.ListUsers(c.Request.Context(), c.Query("q"), status, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "users": res.Users})
}

type setStatusInput struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

// PATCH /api/admin/users/:id/status — approve/reject/reset an account.
// Rejection also kicks the user out of any open sessions.
func (auc *AdminUserController) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid user id"})
		return
	}

	var in setStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	if !in.Status.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
		return
	}

	if err := auc.Repo.SetUserStatus(c.Request.Context(), id, in.Status); err != nil {
		fail(c, err)
		return
	}
	if in.Status == models.StatusRejected {
		_ = auc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "status": in.Status})
}

type setRoleInput struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// PATCH /api/admin/users/:id/role
func (auc *AdminUserController) SetRole(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid user id"})
		return
	}

	// No self-demotion; an admin locking themselves out is unrecoverable
	// without a new bootstrap.
	if uid, ok := app.SessionUserID(c); ok && uid == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot change your own role"})
		return
	}

	var in setRoleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	if !in.Role.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid role"})
		return
	}

	if err := auc.Repo.SetUserRole(c.Request.Context(), id, in.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "role": in.Role})
}

// DELETE /api/admin/users/:id
func (auc *AdminUserController) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid user id"})
		return
	}

	if uid, ok := app.SessionUserID(c); ok && uid == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}

	target, err := auc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if target.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, app.H{"error": "cannot delete an admin"})
		return
	}

	if err := auc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	_ = auc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
