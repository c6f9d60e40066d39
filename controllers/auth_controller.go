package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/models"
	"Gin_postgres_redis_library_system/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type signupInput struct {
	FullName       string `json:"fullName" binding:"required,min=3,max=255"`
	Email          string `json:"email" binding:"required,email"`
	UniversityID   int64  `json:"universityId" binding:"required,gt=0"`
	UniversityCard string `json:"universityCard" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
}

// POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, err)
		return
	}

	u := &models.User{
		ID:             uuid.NewString(),
		FullName:       in.FullName,
		Email:          in.Email,
		Password:       string(hashed),
		UniversityID:   in.UniversityID,
		UniversityCard: in.UniversityCard,
		Status:         models.StatusPending,
		Role:           models.RoleUser,
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}

	// Onboarding notification must not hold the signup response.
	if ac.Notifier.Enabled() {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := ac.Notifier.TriggerOnboarding(ctx, notify.OnboardingEvent{Email: email, FullName: name}); err != nil {
				log.Printf("onboarding trigger failed for %s: %v", email, err)
			}
		}(u.Email, u.FullName)
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

type signinInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /api/auth/signin
func (ac *AuthController) Signin(c *gin.Context) {
	var in signinInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		// Same answer for unknown email and bad password.
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// POST /api/auth/signout
func (ac *AuthController) Signout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.clearAppCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/whoami
func (ac *AuthController) WhoAmI(c *gin.Context) {
	uid, ok := app.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

type updateMeInput struct {
	FullName       string `json:"fullName" binding:"required,min=3,max=255"`
	Email          string `json:"email" binding:"required,email"`
	UniversityID   int64  `json:"universityId" binding:"required,gt=0"`
	UniversityCard string `json:"universityCard" binding:"required"`
	Password       string `json:"password" binding:"omitempty,min=8"`
}

// PUT /api/me — editing the profile drops the account back to PENDING.
func (ac *AuthController) UpdateMe(c *gin.Context) {
	uid, ok := app.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in updateMeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	update := db.UpdateUserProfileInput{
		FullName:       in.FullName,
		Email:          in.Email,
		UniversityID:   in.UniversityID,
		UniversityCard: in.UniversityCard,
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, err)
			return
		}
		update.Password = string(hashed)
	}

	u, err := ac.Repo.UpdateUserProfile(c.Request.Context(), uid, update)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u, "message": "details updated, account pending approval"})
}
