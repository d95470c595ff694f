package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if identity, ok := CurrentIdentity(c); ok {
			attrs = append(attrs, "caller", identity.ID)
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", attrs...)
		case len(c.Errors) > 0:
			logger.Warn("request", append(attrs, "errors", c.Errors.String())...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
