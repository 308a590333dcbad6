package middleware

import (
	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

// ErrorMapper writes the last error attached with c.Error as {"detail": msg}
// with the status of its apperr kind. Handlers that already wrote a response
// are left alone.
func ErrorMapper() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		c.JSON(apperr.Status(err), gin.H{"detail": apperr.Detail(err)})
	}
}
