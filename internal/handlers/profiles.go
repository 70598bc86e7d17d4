package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

func (h *Handler) ListProfiles(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var f store.ProfileFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	scope, ok := h.scope(c, p, query.Profiles)
	if !ok {
		return
	}

	profiles, err := h.Profiles.List(c.Request.Context(), scope, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.Profiles)
	if !ok {
		return
	}
	profile, err := h.Profiles.Get(c.Request.Context(), c.Param("id"), scope)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var patch store.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	profile, err := h.Profiles.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.audit(c, p, "profile", profile.ID, "update", "")
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeactivateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.Profiles.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.audit(c, p, "profile", profile.ID, "deactivate", profile.Email)
	c.JSON(http.StatusOK, profile)
}

// UpdateOwnProfile lets any user rename themselves; nothing else is editable.
func (h *Handler) UpdateOwnProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var patch store.OwnProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	profile, err := h.Profiles.UpdateOwn(c.Request.Context(), p.UserID, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
