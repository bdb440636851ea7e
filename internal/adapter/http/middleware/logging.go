package middleware

import (
	"time"

	"ritual_desk/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one access log line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"actor_id", ActorID(c),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}
		switch {
		case status >= 500:
			log.Error("[http][middleware] request", kv...)
		case status >= 400:
			log.Warn("[http][middleware] request", kv...)
		default:
			log.Info("[http][middleware] request", kv...)
		}
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("[http][middleware] recovered from panic", "path", c.FullPath(), "panic", recovered)
		c.AbortWithStatus(500)
	})
}
