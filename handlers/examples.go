package handlers

import (
	"net/http"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

// StatusReporter is satisfied by the Firebase client.
type StatusReporter interface {
	Ready() bool
}

type exampleUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var exampleUsers = []exampleUser{
	{ID: "1", Name: "John Doe", Email: "john@example.com"},
	{ID: "2", Name: "Jane Smith", Email: "jane@example.com"},
}

// RegisterExamples mounts the demonstration endpoints under api.
func RegisterExamples(api gin.IRouter, fb StatusReporter) {
	api.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": exampleUsers})
	})

	api.POST("/users", func(c *gin.Context) {
		name, okName := c.GetQuery("name")
		email, okEmail := c.GetQuery("email")
		if !okName || !okEmail {
			_ = c.Error(apperr.Invalid("Query parameters name and email are required"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":      "3",
			"name":    name,
			"email":   email,
			"message": "User created successfully",
		})
	})

	api.GET("/firebase-status", func(c *gin.Context) {
		ready := fb != nil && fb.Ready()
		msg := "Firebase not configured"
		if ready {
			msg = "Firebase is initialized"
		}
		c.JSON(http.StatusOK, gin.H{"firebase_initialized": ready, "message": msg})
	})
}
