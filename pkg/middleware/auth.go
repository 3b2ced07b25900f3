package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docuvault/docuvault/internal/access"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/config"
	"github.com/docuvault/docuvault/pkg/logger"
)

const principalKey = "principal"

// tokenKey exposes the raw token to the logout handler.
const tokenKey = "accessToken"

// Auth verifies the request's access token and stores the resulting
// principal in the context. Tokens are accepted from the Authorization
// header (Bearer scheme) or the legacy x-access-token header.
func Auth(cfg *config.Config, bl *auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "No token provided"})
			return
		}
		revoked, err := bl.IsRevoked(c.Request.Context(), raw)
		if err != nil {
			// fail closed: a broken blacklist must not readmit revoked tokens
			logger.Errorf("token blacklist check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Token verification unavailable"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token has been revoked"})
			return
		}
		pr, err := auth.VerifyAccessToken(cfg, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Failed to authenticate token"})
			return
		}
		c.Set(principalKey, pr)
		c.Set(tokenKey, raw)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return c.GetHeader("x-access-token")
}

// Principal returns the authenticated principal set by Auth.
func Principal(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return access.Principal{}, false
	}
	pr, ok := v.(access.Principal)
	return pr, ok
}

// RawToken returns the verified token string set by Auth.
func RawToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
