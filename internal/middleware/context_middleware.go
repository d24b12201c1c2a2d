package middleware

import (
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by this package.
const (
	ContextRequestID = "request_id"
	ContextUserID    = "user_id"
	ContextWorkspace = "workspace"
)

// ContextLogger attaches a request-scoped logger carrying the request and
// user ids and logs one line per request. It must run after RequestID and
// Session.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetString(ContextRequestID)
		uid := c.GetString(ContextUserID)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Debug("request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
