package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/models"
	"culture-passport/internal/store"
)

func (h *Handler) RoadmapCRUD() *CRUD[models.RoadmapMilestone, store.RoadmapPatch] {
	return NewCRUD[models.RoadmapMilestone, store.RoadmapPatch](h, h.Roadmap, "roadmap_milestone")
}

// MyRoadmap returns the milestones dated against the caller's probation start.
func (h *Handler) MyRoadmap(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.Roadmap.Timeline(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
