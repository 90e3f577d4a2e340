package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLogger logs one line per request. Health and metrics probes are skipped.
// Run it after RequestIDMiddleware so the id is available.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString("request_id")),
		}

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Error("request error", append(fields, zap.Error(e.Err))...)
			}
			return
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("server error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
