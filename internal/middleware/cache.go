package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks responses as uncacheable. API payloads reflect the current
// database state and must not be served from shared caches.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
