package middleware

import (
	"strconv"

	"github.com/firetemplate/items-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics counts requests by method, matched route and status.
// Unmatched paths are grouped under "unmatched" to keep label cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
