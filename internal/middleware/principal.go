package middleware

import (
	"github.com/gin-gonic/gin"

	"culture-passport/internal/auth"
)

const (
	principalKey = "CurrentPrincipal"
	claimsKey    = "CurrentClaims"
)

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
	c.Set(principalKey, claims.Principal())
}

// SetPrincipal is used by tests and by handlers mounted without RequireAuth.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// CurrentClaims returns the verified token claims, needed for logout.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
