package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts panics into a 500 JSON response instead of tearing down
// the connection, logging the stack trace.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("stacktrace", string(debug.Stack())),
				)
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
