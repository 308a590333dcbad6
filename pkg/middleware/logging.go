package middleware

import (
	"time"

	"github.com/firetemplate/items-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request. Query strings are not
// logged since they may carry tokens.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		)
	}
}
