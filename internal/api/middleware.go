package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/companyfinder/internal/logger"
)

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		log.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", duration.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
