// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/notify"
	"Gin_postgres_redis_library_system/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Notifier  *notify.Client
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		Notifier:  a.Notifier,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearAppCookie(w http.ResponseWriter) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// issueSession records the login and sets the session cookie.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID) // best effort
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// bindError turns validator failures into per-field messages; anything else
// is reported as-is.
func bindError(err error) app.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := map[string]string{}
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return app.H{"error": "validation failed", "fields": fields}
	}
	return app.H{"error": err.Error()}
}

// fail maps repo sentinels onto HTTP statuses; unknown errors are store
// errors, logged and reported as 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrBookNotFound),
		errors.Is(err, db.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotAvailable),
		errors.Is(err, db.ErrAlreadyBorrowed),
		errors.Is(err, db.ErrNoActiveBorrow),
		errors.Is(err, db.ErrEmailTaken):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotEligible):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	default:
		log.Printf("store error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
	}
}
