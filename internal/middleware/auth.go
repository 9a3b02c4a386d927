package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-tracker-api/internal/auth"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
)

// TokenVerifier verifies bearer tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Gate authenticates requests with bearer tokens. Revocation is optional.
type Gate struct {
	verifier   TokenVerifier
	revocation auth.RevocationStore
	log        logrus.FieldLogger
}

// NewGate creates a Gate. revocation may be nil.
func NewGate(verifier TokenVerifier, revocation auth.RevocationStore, log logrus.FieldLogger) *Gate {
	return &Gate{verifier: verifier, revocation: revocation, log: log}
}

// RequireAuth checks that the request carries a valid bearer token
func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin checks that the request carries a valid bearer token of an admin
func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := g.authenticate(c)
		if !ok {
			return
		}

		if claims.Role != constants.RoleAdmin {
			apierrors.Forbidden(c, "Access denied. You are not admin.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate verifies the token and stores its claims in the context.
// It aborts the request and returns false on failure.
func (g *Gate) authenticate(c *gin.Context) (*auth.Claims, bool) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		apierrors.Unauthorized(c, "Access denied. No token provided.")
		c.Abort()
		return nil, false
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		apierrors.Forbidden(c, "Invalid token")
		c.Abort()
		return nil, false
	}

	if g.revocation != nil {
		revoked, err := g.revocation.IsUserRevoked(c.Request.Context(), claims.UserID)
		switch {
		case err != nil:
			// Fail open: the store only narrows access for archived users.
			RequestLog(c, g.log).WithError(err).Warn("Failed to check token revocation")
		case revoked:
			apierrors.Forbidden(c, "Invalid token")
			c.Abort()
			return nil, false
		}
	}

	c.Set(constants.ContextKeyClaims, claims)
	return claims, true
}

// bearerToken returns the second whitespace-separated part of the header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
