package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"cloudstore/internal/pkg/logger"
	"cloudstore/internal/pkg/response"
)

// RequestLogger writes one structured log line per request and turns
// panics into a 500 fail envelope instead of a dropped connection.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Log.Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("client_ip", c.ClientIP()).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("request panicked")

				response.Fail(c, http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				c.Abort()
			}
		}()

		c.Next()

		evt := logger.Log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = logger.Log.Error()
		}
		evt.
			Int("status", c.Writer.Status()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Str("client_ip", c.ClientIP()).
			Int64("user_id", c.GetInt64("user_id")).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
