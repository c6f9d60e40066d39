package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-IP limiter for the auth endpoints. The
// first hit in a window creates the counter with an expiry; once the counter
// passes the limit the request is rejected with 429.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "lib:ratelimit:" + c.ClientIP() + ":" + c.FullPath()

		n, err := rdb.Incr(c, key).Result()
		if err != nil {
			// Redis down should not lock everyone out.
			c.Next()
			return
		}
		if n == 1 {
			_ = rdb.Expire(c, key, window).Err()
		}
		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
