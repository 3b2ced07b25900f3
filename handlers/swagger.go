package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>docuvault — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the document API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "docuvault", "version": "v0.1.0" },
  "paths": {
    "/api/documents": {
      "post": {
        "summary": "Create a document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"content":{"type":"string"},"userId":{"type":"string"},"role":{"type":"string"}}}}}},
        "responses": { "200": { "description": "document created" }, "404": { "description": "role or user not found" }, "409": { "description": "duplicate title" } }
      },
      "get": {
        "summary": "List/search documents",
        "parameters": [
          {"name":"limit","in":"query","schema":{"type":"integer"}},
          {"name":"after","in":"query","schema":{"type":"integer"}},
          {"name":"title","in":"query","schema":{"type":"string"}},
          {"name":"role","in":"query","schema":{"type":"string"}},
          {"name":"createdAt","in":"query","schema":{"type":"string"}}
        ],
        "responses": { "200": { "description": "array of documents, possibly empty" } }
      }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Get a document", "responses": { "200": { "description": "document" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a document (owner only)", "responses": { "200": { "description": "updated" }, "403": { "description": "access denied" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a document (owner only)", "responses": { "200": { "description": "deleted" }, "403": { "description": "access denied" }, "404": { "description": "not found" } } }
    },
    "/api/documents/role/{role}/{limit}": {
      "get": { "summary": "Documents tagged with a role", "responses": { "200": { "description": "array" }, "404": { "description": "role has no document" } } }
    },
    "/api/user/{userId}/documents/{limit}": {
      "get": { "summary": "Documents owned by a user", "responses": { "200": { "description": "array" }, "404": { "description": "user has no document" } } }
    },
    "/api/users/login": {
      "post": { "summary": "Login and receive an access token", "responses": { "200": { "description": "token returned" }, "401": { "description": "authentication failed" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
