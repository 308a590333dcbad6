package middleware

import (
	"context"
	"strings"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Verifier is the minimal interface the middleware depends on. It returns nil
// for any token it cannot verify.
type Verifier interface {
	VerifyToken(ctx context.Context, raw string) *models.Caller
}

const (
	callerKey = "caller"
	tokenKey  = "token"

	msgInvalidToken = "Invalid authentication token"
)

// ExtractToken returns the bearer token from the Authorization header or,
// when the header carries no Bearer credential, the "token" query parameter.
// The scheme is matched case-insensitively.
func ExtractToken(c *gin.Context) string {
	if auth := strings.TrimSpace(c.GetHeader("Authorization")); auth != "" {
		scheme, tok, ok := strings.Cut(auth, " ")
		if tok = strings.TrimSpace(tok); ok && strings.EqualFold(scheme, "Bearer") && tok != "" {
			return tok
		}
	}
	return strings.TrimSpace(c.Query("token"))
}

// TokenAuth returns a Gin middleware that verifies the caller's token and
// stores the identity in the context. Unverifiable requests stop here with 401.
func TokenAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		var caller *models.Caller
		if raw != "" {
			caller = ver.VerifyToken(c.Request.Context(), raw)
		}
		if caller == nil || caller.UID == "" {
			_ = c.Error(apperr.Unauthorized(msgInvalidToken))
			c.Abort()
			return
		}
		c.Set(callerKey, caller)
		c.Set(tokenKey, raw)
		c.Next()
	}
}

// CallerFrom returns the identity stored by TokenAuth.
func CallerFrom(c *gin.Context) (*models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	caller, ok := v.(*models.Caller)
	return caller, ok && caller != nil
}

// TokenFrom returns the raw token accepted by TokenAuth.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}
