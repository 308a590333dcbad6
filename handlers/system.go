package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) bool

// RegisterSystem mounts the always-on endpoints. None of them require a token
// and /health never touches a dependency.
func RegisterSystem(r gin.IRouter, checks map[string]Check) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Welcome to the Items API",
			"status":    "running",
			"docs":      "/docs",
			"api":       "/api",
			"endpoints": []string{"/users/me", "/items", "/items/{item_id}"},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := make(map[string]bool, len(checks))
		ready := true
		for name, check := range checks {
			ok := check(ctx)
			deps[name] = ok
			ready = ready && ok
		}
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "dependencies": deps})
	})
}
