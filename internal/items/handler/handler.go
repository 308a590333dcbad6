package handler

import (
	"net/http"
	"strconv"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/firetemplate/items-api/internal/items"
	"github.com/firetemplate/items-api/internal/items/service"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// itemBody is the request body for create and update. Both fields must be
// present; empty strings are allowed.
type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func bindPatch(c *gin.Context) (items.Patch, error) {
	var body itemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return items.Patch{}, apperr.Invalid("Invalid request body: " + err.Error())
	}
	if body.Name == nil {
		return items.Patch{}, apperr.Invalid("Field required: name")
	}
	if body.Description == nil {
		return items.Patch{}, apperr.Invalid("Field required: description")
	}
	return items.Patch{Name: *body.Name, Description: *body.Description}, nil
}

func parseLimit(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok {
		return items.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid("limit must be an integer")
	}
	return n, nil
}

// RegisterItemRoutes mounts the item CRUD endpoints. Every route runs auth first.
func RegisterItemRoutes(r gin.IRouter, svc *service.Service, auth gin.HandlerFunc) {
	g := r.Group("/items", auth)

	g.GET("", func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		limit, err := parseLimit(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		list, err := svc.List(c.Request.Context(), caller, limit)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if list == nil {
			list = []*items.Item{}
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		p, err := bindPatch(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		it, err := svc.Create(c.Request.Context(), caller, p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	g.GET("/:item_id", func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		it, err := svc.Get(c.Request.Context(), caller, c.Param("item_id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	g.PUT("/:item_id", func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		p, err := bindPatch(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		it, err := svc.Update(c.Request.Context(), caller, c.Param("item_id"), p)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, it)
	})

	g.DELETE("/:item_id", func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		if err := svc.Delete(c.Request.Context(), caller, c.Param("item_id")); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	})
}
