package handlers

import (
	"net/http"

	"github.com/firetemplate/items-api/internal/users"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes mounts /users/me behind auth.
func RegisterUserRoutes(r gin.IRouter, svc *users.Service, auth gin.HandlerFunc) {
	r.GET("/users/me", auth, func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		p, err := svc.Me(c.Request.Context(), caller)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
