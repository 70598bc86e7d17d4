package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

func (h *Handler) AnnouncementCRUD() *CRUD[models.Announcement, store.AnnouncementPatch] {
	return NewCRUD[models.Announcement, store.AnnouncementPatch](h, h.Announcements, "announcement")
}

// ListAnnouncements shows admins everything and everyone else the active ones.
func (h *Handler) ListAnnouncements(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var (
		items []models.Announcement
		err   error
	)
	if p.IsAdmin() {
		items, err = h.Announcements.List(c.Request.Context(), query.Spec{})
	} else {
		items, err = h.Announcements.Active(c.Request.Context())
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAnnouncement hides inactive announcements from everyone but admins.
func (h *Handler) GetAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	a, err := h.Announcements.Get(c.Request.Context(), c.Param("id"))
	if err == nil && !a.IsActive && !p.IsAdmin() {
		err = store.ErrNotFound
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type announcementRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsActive    *bool      `json:"is_active"`
	PublishedAt *time.Time `json:"published_at"`
}

// CreateAnnouncement publishes immediately unless is_active is false.
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if !bindJSON(c, &req) {
		return
	}
	a := models.Announcement{Title: req.Title, Content: req.Content, IsActive: true}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	a.PublishedAt = req.PublishedAt
	if err := h.Announcements.Create(c.Request.Context(), &a); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UndismissedAnnouncements(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.Announcements.Undismissed(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) DismissAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.Announcements.Dismiss(c.Request.Context(), c.Param("id"), p.UserID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "announcement dismissed"})
}
