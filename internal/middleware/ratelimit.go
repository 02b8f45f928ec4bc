package middleware

import (
	"fmt"
	"log"
	"net/http"
	"restaurant_pos/internal/redis"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit enforces a fixed-window per-IP request limit backed by redis.
// When the counter store is unavailable the limiter fails open: throttling
// is protection, not a correctness requirement.
func RateLimit(client *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", name, c.ClientIP())
		count, err := client.IncrWindow(key, window)
		if err != nil {
			log.Printf("rate limiter: %v", err)
			c.Next()
			return
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later."})
			return
		}
		c.Next()
	}
}
