package middleware

import (
	"net/http"
	"strings"

	"inkwell/pkg/authz"
	"inkwell/pkg/jwt"
	"inkwell/pkg/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware requires a valid Bearer token and stores the decoded
// identity in the context.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware decodes an identity when a valid token is present
// and lets the request through either way. Listing endpoints use it to apply
// per-caller visibility.
func OptionalAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtService); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. It must run after
// AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.Authorize(Identity(c), authz.AnyRole(roles...)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the caller identity stored by the auth middleware, or nil
// for anonymous requests.
func Identity(c *gin.Context) *authz.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*authz.Identity)
	if !ok {
		return nil
	}
	return identity
}

func parseBearer(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(identityKey, &authz.Identity{
		ID:       claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     models.UserRole(claims.Role),
	})
}
