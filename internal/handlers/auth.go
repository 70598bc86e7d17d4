package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/middleware"
	"culture-passport/internal/query"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(c, "email and password are required")
		return
	}

	sess, err := h.Credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Metrics.ObserveLogin(sess != nil)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Session echoes the token's identity together with the current profile.
func (h *Handler) Session(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.Profiles.Get(c.Request.Context(), p.UserID, query.Spec{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p, "profile": profile})
}

// Logout denylists the token until it would have expired anyway. Without a
// revocation store it only tells the client to drop the token.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if ok && claims.ExpiresAt != nil {
		if err := h.Revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			h.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
