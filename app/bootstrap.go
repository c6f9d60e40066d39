package app

import (
	"context"
	"errors"
	"log"

	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin makes sure the configured admin account exists and is
// APPROVED/ADMIN, so a fresh deployment is not locked out of the admin API.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminEmail == "" {
		return
	}

	if u, err := repo.FindUserByEmail(ctx, cfg.AdminEmail); err == nil {
		if u.Role != models.RoleAdmin {
			if err := repo.SetUserRole(ctx, u.ID, models.RoleAdmin); err != nil {
				log.Printf("bootstrap: promote admin failed: %v", err)
			}
		}
		return
	} else if !errors.Is(err, db.ErrUserNotFound) {
		log.Printf("bootstrap: lookup admin failed: %v", err)
		return
	}

	if cfg.AdminPassword == "" {
		log.Printf("bootstrap: ADMIN_EMAIL set but ADMIN_PASSWORD empty, skipping")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap: hash password failed: %v", err)
		return
	}

	admin := &models.User{
		ID:       uuid.NewString(),
		FullName: "Library Admin",
		Email:    cfg.AdminEmail,
		Password: string(hashed),
		Status:   models.StatusApproved,
		Role:     models.RoleAdmin,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		log.Printf("bootstrap: create admin failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created admin account for %s", cfg.AdminEmail)
}
