package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsAllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"}

// CORS allows the listed origins with credentials. "*" in the list allows
// every origin; the request origin is echoed back instead of a literal "*".
// Requests from unlisted origins are rejected with 403 by gin-contrib/cors.
func CORS(allowed []string) gin.HandlerFunc {
	allowAll := false
	origins := make([]string, 0, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
			continue
		}
		origins = append(origins, o)
	}
	return cors.New(cors.Config{
		AllowOrigins:              origins,
		AllowOriginFunc:           func(string) bool { return allowAll },
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              corsAllowHeaders,
		AllowCredentials:          true,
		MaxAge:                    10 * time.Minute,
		OptionsResponseStatusCode: http.StatusOK,
	})
}
