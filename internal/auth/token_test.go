package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culture-passport/internal/models"
)

var alice = Principal{UserID: "4f7c1b7e-1111-4c4e-9d43-2f1c2d3e4f50", Email: "alice@x.com", Role: models.RoleManager}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)

	raw, err := svc.Issue(alice)
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.Principal())
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokenService([]byte("s"), 0).TTL())
}

func TestVerifyFailuresAreUniform(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)
	good, err := svc.Issue(alice)
	require.NoError(t, err)

	expiredSvc := NewTokenService([]byte("secret"), time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := expiredSvc.Issue(alice)
	require.NoError(t, err)

	forged, err := NewTokenService([]byte("other"), time.Hour).Issue(alice)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": alice.UserID, "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := svc.Issue(Principal{Email: "x@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	badRole, err := svc.Issue(Principal{UserID: "u1", Role: models.UserRole("root")})
	require.NoError(t, err)

	adminToken, err := svc.Issue(Principal{UserID: alice.UserID, Email: alice.Email, Role: models.RoleAdmin})
	require.NoError(t, err)
	// admin claims carrying the manager token's signature
	tampered := adminToken[:strings.LastIndex(adminToken, ".")] + good[strings.LastIndex(good, "."):]

	for name, raw := range map[string]string{
		"expired":    expired,
		"forged":     forged,
		"alg none":   none,
		"no subject": noSubject,
		"bad role":   badRole,
		"garbage":    "not-a-token",
		"empty":      "",
		"tampered":   tampered,
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.Verify(raw)
			assert.Nil(t, claims)
			assert.Equal(t, ErrInvalidToken, err)
		})
	}
}

func TestPrincipalRoles(t *testing.T) {
	assert.True(t, alice.Reviewer())
	assert.False(t, alice.IsAdmin())
	assert.True(t, alice.HasRole(models.RoleAdmin, models.RoleManager))

	emp := Principal{UserID: "e", Role: models.RoleEmployee}
	assert.False(t, emp.Reviewer())
	assert.False(t, emp.HasRole())
}
