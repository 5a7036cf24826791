package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ms-catering/internal/models"
)

const ginIdentityKey = "identity"

// GinMiddleware is the gin flavour of Middleware, used by the menu
// service.
func GinMiddleware(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := ExtractTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "error": err.Error()})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "error": err.Error()})
			return
		}

		c.Set(ginIdentityKey, identity)
		c.Next()
	}
}

// GinRequireAdmin aborts unless the verified identity has the admin role.
func GinRequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GinIdentity(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden", "error": "admin access required"})
			return
		}
		c.Next()
	}
}

func GinIdentity(c *gin.Context) (models.Identity, bool) {
	val, exists := c.Get(ginIdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}
