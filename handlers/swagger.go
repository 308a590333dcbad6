package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API docs.
// - GET /docs          -> Swagger UI page that loads the OpenAPI JSON
// - GET /openapi.json  -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(openAPIJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Items API | Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const openAPIJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "Items API", "description": "Token-verified CRUD on user-owned items", "version": "1.0.0" },
  "components": {
    "securitySchemes": {
      "bearer": { "type": "http", "scheme": "bearer" },
      "queryToken": { "type": "apiKey", "in": "query", "name": "token" }
    },
    "schemas": {
      "ItemInput": { "type": "object", "required": ["name","description"], "properties": { "name": {"type":"string"}, "description": {"type":"string"} } },
      "Item": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "description": {"type":"string"}, "owner": {"type":"string"} } },
      "Error": { "type": "object", "properties": { "detail": {"type":"string"} } }
    }
  },
  "security": [ { "bearer": [] }, { "queryToken": [] } ],
  "paths": {
    "/": { "get": { "summary": "Welcome payload", "security": [], "responses": { "200": { "description": "running" } } } },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/users/me": { "get": { "summary": "Current user profile", "responses": { "200": { "description": "profile" }, "401": { "description": "invalid token" }, "404": { "description": "User not found" } } } },
    "/items": {
      "get": {
        "summary": "List items owned by the caller",
        "parameters": [ { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 10 } } ],
        "responses": { "200": { "description": "items", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Item" } } } } }, "401": { "description": "invalid token" }, "422": { "description": "invalid limit" } }
      },
      "post": {
        "summary": "Create an item",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ItemInput" } } } },
        "responses": { "200": { "description": "created item" }, "401": { "description": "invalid token" }, "422": { "description": "invalid body" } }
      }
    },
    "/items/{item_id}": {
      "parameters": [ { "name": "item_id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Fetch an item", "responses": { "200": { "description": "item" }, "403": { "description": "Access denied" }, "404": { "description": "Item not found" } } },
      "put": {
        "summary": "Replace name and description",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ItemInput" } } } },
        "responses": { "200": { "description": "updated item" }, "403": { "description": "Access denied" }, "404": { "description": "Item not found" } }
      },
      "delete": { "summary": "Delete an item", "responses": { "200": { "description": "Item deleted successfully" }, "403": { "description": "Access denied" }, "404": { "description": "Item not found" } } }
    },
    "/api/users": {
      "get": { "summary": "Example user list", "security": [], "responses": { "200": { "description": "users" } } },
      "post": {
        "summary": "Example user creation",
        "security": [],
        "parameters": [ { "name": "name", "in": "query", "required": true, "schema": { "type": "string" } }, { "name": "email", "in": "query", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "echoed user" }, "422": { "description": "missing parameter" } }
      }
    },
    "/api/firebase-status": { "get": { "summary": "Firebase initialisation status", "security": [], "responses": { "200": { "description": "status" } } } },
    "/api/auth/logout": { "post": { "summary": "Revoke the presented token", "responses": { "200": { "description": "logged out" }, "401": { "description": "invalid token" } } } }
  }
}`
