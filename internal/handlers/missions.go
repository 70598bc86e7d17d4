package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/lifecycle"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

// Missions serves the mission catalogue. Deletion is a soft delete that
// also cancels open assignments.
func (h *Handler) MissionCRUD() *CRUD[models.Mission, store.MissionPatch] {
	r := NewCRUD[models.Mission, store.MissionPatch](h, h.Missions, "mission")
	r.Filter = func(c *gin.Context) (query.Spec, error) {
		var f store.MissionFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			return query.Spec{}, err
		}
		return f.Spec(), nil
	}
	return r
}

func (h *Handler) DeleteMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	cancelled, err := h.Missions.SoftDelete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.audit(c, p, "mission", id, "delete", fmt.Sprintf("cancelled %d assignments", cancelled))
	c.JSON(http.StatusOK, gin.H{"message": "mission deleted", "cancelled": cancelled})
}

func (h *Handler) ListUserMissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var f store.UserMissionFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	scope, ok := h.scope(c, p, query.UserMissions)
	if !ok {
		return
	}
	items, err := h.UserMissions.List(c.Request.Context(), scope, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetUserMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.UserMissions)
	if !ok {
		return
	}
	um, err := h.UserMissions.Get(c.Request.Context(), c.Param("id"), scope)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, um)
}

type assignRequest struct {
	MissionID string   `json:"mission_id"`
	UserIDs   []string `json:"user_ids"`
}

// AssignMission returns only newly created assignments; pairs that already
// existed are skipped without an error.
func (h *Handler) AssignMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req assignRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.UserMissions.Assign(c.Request.Context(), req.MissionID, req.UserIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	for _, um := range created {
		h.audit(c, p, "user_mission", um.ID, "assign", "user "+um.UserID)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) StartUserMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	um, err := h.UserMissions.Start(c.Request.Context(), c.Param("id"), p.UserID)
	h.transitionResult(c, lifecycle.Start, um, err)
}

func (h *Handler) SubmitUserMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var sub store.Submission
	if !bindJSON(c, &sub) {
		return
	}
	um, err := h.UserMissions.Submit(c.Request.Context(), c.Param("id"), p.UserID, sub)
	h.transitionResult(c, lifecycle.Submit, um, err)
}

// ReviewUserMission approves or rejects within the reviewer's scope. A
// submission outside it looks exactly like a missing one.
func (h *Handler) ReviewUserMission(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var r store.Review
	if !bindJSON(c, &r) {
		return
	}
	scope, ok := h.scope(c, p, query.UserMissions)
	if !ok {
		return
	}
	um, err := h.UserMissions.Review(c.Request.Context(), c.Param("id"), p.UserID, scope, r)
	ev := lifecycle.ReviewEvent(r.Approved)
	if err == nil {
		h.audit(c, p, "user_mission", um.ID, "review", string(ev))
	}
	h.transitionResult(c, ev, um, err)
}

func (h *Handler) transitionResult(c *gin.Context, ev lifecycle.Event, um *models.UserMission, err error) {
	h.Metrics.ObserveTransition(string(ev), err == nil)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, um)
}
