// Package app assembles the HTTP engine from dependencies built by main.
package app

import (
	"net/http"

	"github.com/firetemplate/items-api/handlers"
	itemhandler "github.com/firetemplate/items-api/internal/items/handler"
	"github.com/firetemplate/items-api/internal/items/service"
	"github.com/firetemplate/items-api/internal/users"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the routes need. All fields are required except
// Metrics, which defaults to no /metrics endpoint.
type Deps struct {
	AllowedOrigins []string
	Verifier       middleware.Verifier
	Items          *service.Service
	Users          *users.Service
	Firebase       handlers.StatusReporter
	Revoker        handlers.Revoker
	Checks         map[string]handlers.Check
	Metrics        http.Handler
}

// New builds the engine. Middleware order: recovery, request logging,
// metrics, error mapping, CORS.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.RequestMetrics(),
		middleware.ErrorMapper(),
		middleware.CORS(d.AllowedOrigins),
	)

	handlers.RegisterSystem(r, d.Checks)
	handlers.RegisterSwagger(r)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	auth := middleware.TokenAuth(d.Verifier)
	handlers.RegisterUserRoutes(r, d.Users, auth)
	itemhandler.RegisterItemRoutes(r, d.Items, auth)

	api := r.Group("/api")
	handlers.RegisterExamples(api, d.Firebase)
	handlers.NewAuthHandler(d.Revoker).Register(api, auth)
	return r
}
