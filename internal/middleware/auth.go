package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
)

const bearerPrefix = "Bearer "

// RequireAuth verifies the bearer token and stores the caller's principal on
// the context. Every failure gets the same 401 so callers cannot tell a
// forged token from an expired or revoked one.
func RequireAuth(tokens *auth.TokenService, revoker auth.Revoker, log logrus.FieldLogger) gin.HandlerFunc {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthorized(c)
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			unauthorized(c)
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.WithError(err).Warn("token revocation check failed")
			unauthorized(c)
			return
		}
		if revoked {
			unauthorized(c)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			unauthorized(c)
			return
		}
		if _, ok := roleSet[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
}
