package middlewares

import (
	"net/http"

	"github.com/codewith-lab/BlogHive/models"
	"github.com/codewith-lab/BlogHive/utils"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware resolves the optional bearer token into a caller identity.
// No token means anonymous browsing is fine; a present-but-invalid token
// aborts the request with 400 before any route logic runs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.Next()
			return
		}
		identity, err := utils.ParseJWT(token, secret)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid auth token"})
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAuth gates the mutation routes. Anonymous callers get 401 and the
// handler never runs, so no store access happens for rejected requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).IsAnonymous() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity resolved by AuthMiddleware, or the zero
// identity for anonymous callers.
func IdentityFrom(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}
