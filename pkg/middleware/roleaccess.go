package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/docuvault/docuvault/internal/roles"
	"github.com/docuvault/docuvault/pkg/metrics"
)

// RoleAccess rejects a write whose submitted title equals the privileged
// role name. The comparison is against the title field, not a role field;
// it guards against a document title colliding with the privileged role's
// name. The body is bound with ShouldBindBodyWith so downstream handlers
// can re-bind it.
func RoleAccess(privilegedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var probe struct {
			Title string `json:"title"`
		}
		if err := c.ShouldBindBodyWith(&probe, binding.JSON); err == nil && probe.Title == privilegedRole {
			metrics.AccessDenied.WithLabelValues("title").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access Denied"})
			return
		}
		c.Next()
	}
}

// RoleAuth admits a request only when the caller's role resolves to the
// privileged role name. The role id is taken from the :id path parameter
// when present, otherwise from the authenticated principal.
func RoleAuth(repo roles.Repository, privilegedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			if pr, ok := Principal(c); ok {
				id = pr.Role
			}
		}
		role, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if role == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "Role not found"})
			return
		}
		if role.Title != privilegedRole {
			metrics.AccessDenied.WithLabelValues("role").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		c.Next()
	}
}
