package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/firetemplate/items-api/pkg/logger"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Revoker is the token denylist used by logout.
type Revoker interface {
	Enabled() bool
	Revoke(ctx context.Context, token string, until time.Time) error
}

// AuthHandler holds dependencies
type AuthHandler struct {
	revoker Revoker
}

func NewAuthHandler(r Revoker) *AuthHandler {
	return &AuthHandler{revoker: r}
}

// Register routes under /auth. auth must run before the handlers.
func (h *AuthHandler) Register(rg gin.IRouter, auth gin.HandlerFunc) {
	a := rg.Group("/auth", auth)
	a.POST("/logout", h.Logout)
}

// Logout revokes the presented token until it expires. Without a revocation
// store the call succeeds and reports revoked=false.
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	if h.revoker == nil || !h.revoker.Enabled() {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "revoked": false})
		return
	}
	if err := h.revoker.Revoke(c.Request.Context(), middleware.TokenFrom(c), caller.ExpiresAt); err != nil {
		logger.Errorf("revoke token for %s: %v", caller.UID, err)
		_ = c.Error(apperr.Backend(err))
		return
	}
	logger.Infof("token revoked for %s (source=%s)", caller.UID, caller.Source)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "revoked": true})
}
