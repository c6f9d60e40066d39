package app

import (
	"Gin_postgres_redis_library_system/db"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// TouchLastActivity bumps the user's last_activity_date at most once per
// throttle window. The SetNX key absorbs the write pressure; the DB update
// itself is best effort and never blocks the request.
func TouchLastActivity(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := SessionUserID(c)
		if !ok {
			c.Next()
			return
		}

		key := "lib:lastactivity:" + uid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserActivity(c, uid)
		}
		c.Next()
	}
}
