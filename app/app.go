package app

import (
	"Gin_postgres_redis_library_system/db"
	"Gin_postgres_redis_library_system/notify"
	"Gin_postgres_redis_library_system/session"
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers read a little shorter.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router   *gin.Engine
	DB       *gorm.DB
	RDB      *redis.Client
	Notifier *notify.Client
	Config   Config

	appSess *session.AppSessionStore
}

// Config is read from environment variables.
type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration

	// First-admin bootstrap; skipped when AdminEmail is empty.
	AdminEmail    string
	AdminPassword string

	// Onboarding webhook; fire-and-forget, skipped when empty.
	WorkflowURL   string
	WorkflowToken string

	// Fixed-window rate limit for signup/signin.
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

// New wires an App from already-open connections; MustNew is the production
// path that opens them from the environment.
func New(dbConn *gorm.DB, rdb *redis.Client, cfg Config) *App {
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:   r,
		DB:       dbConn,
		RDB:      rdb,
		Notifier: notify.NewClient(cfg.WorkflowURL, cfg.WorkflowToken),
		Config:   cfg,
		appSess:  session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	return New(dbConn, rdb, cfg)
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	ttl := 24 * time.Hour
	if sec, err := strconv.Atoi(get("SESSION_TTL_SECONDS", "")); err == nil && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}

	limit := 5
	if n, err := strconv.Atoi(get("AUTH_RATE_LIMIT", "")); err == nil && n > 0 {
		limit = n
	}
	window := time.Minute
	if sec, err := strconv.Atoi(get("AUTH_RATE_WINDOW_SECONDS", "")); err == nil && sec > 0 {
		window = time.Duration(sec) * time.Second
	}

	return Config{
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		WebOrigin:      get("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL:     ttl,
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		WorkflowURL:    os.Getenv("WORKFLOW_URL"),
		WorkflowToken:  os.Getenv("WORKFLOW_TOKEN"),
		AuthRateLimit:  limit,
		AuthRateWindow: window,
	}
}
