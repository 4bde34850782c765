package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/security"
)

const authClaimsKey = "auth_claims"

// AuthMiddleware valida el bearer token de sesión y guarda claims en el contexto.
func AuthMiddleware(codec *security.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if codec == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token codec not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := codec.ValidateSessionToken(token)
		if err != nil {
			// Vencido y malformado se reportan distinto: uno pide
			// re-login, el otro es basura.
			if errors.Is(err, security.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin corta requests de principals sin rol admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAuthClaims obtiene los claims de sesión desde el contexto.
func GetAuthClaims(c *gin.Context) (security.SessionClaims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return security.SessionClaims{}, false
	}
	claims, ok := val.(security.SessionClaims)
	return claims, ok
}
