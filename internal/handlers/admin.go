package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

type createUserRequest struct {
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	FullName       string          `json:"full_name"`
	Role           models.UserRole `json:"role"`
	CompanyID      *string         `json:"company_id"`
	DepartmentID   *string         `json:"department_id"`
	PositionID     *string         `json:"position_id"`
	ProbationStart *time.Time      `json:"probation_start"`
	ProbationEnd   *time.Time      `json:"probation_end"`
}

// CreateUser provisions a profile and its login in one step.
func (h *Handler) CreateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	profile := &models.Profile{
		FullName:       req.FullName,
		Email:          req.Email,
		Role:           req.Role,
		Status:         models.ProfileActive,
		CompanyID:      req.CompanyID,
		DepartmentID:   req.DepartmentID,
		PositionID:     req.PositionID,
		ProbationStart: req.ProbationStart,
		ProbationEnd:   req.ProbationEnd,
	}
	if err := h.Credentials.CreateWithProfile(c.Request.Context(), profile, req.Password); err != nil {
		h.respondError(c, err)
		return
	}
	h.audit(c, p, "profile", profile.ID, "create", profile.Email)
	c.JSON(http.StatusCreated, profile)
}

// adminScopes resolves the caller's scope over profiles and over rows owned
// through user_id.
func (h *Handler) adminScopes(c *gin.Context) (profiles, owned query.Spec, ok bool) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if profiles, ok = h.scope(c, p, query.Profiles); !ok {
		return
	}
	owned, ok = h.scope(c, p, query.UserMissions)
	return
}

func (h *Handler) OverviewStats(c *gin.Context) {
	profiles, owned, ok := h.adminScopes(c)
	if !ok {
		return
	}
	stats, err := h.Admin.Overview(c.Request.Context(), profiles, owned)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportData answers JSON by default; format=csv flattens user missions.
func (h *Handler) ExportData(c *gin.Context) {
	profiles, owned, ok := h.adminScopes(c)
	if !ok {
		return
	}
	data, err := h.Admin.Export(c.Request.Context(), profiles, owned, splitIDs(c.Query("user_ids")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, data)
	case "csv":
		h.writeCSV(c, data)
	default:
		badRequest(c, "format must be json or csv")
	}
}

var exportHeader = []string{
	"user_id", "full_name", "email", "mission_id", "status",
	"feedback_score", "submitted_at", "reviewed_at",
}

func (h *Handler) writeCSV(c *gin.Context, data *store.ExportData) {
	byID := make(map[string]models.Profile, len(data.Profiles))
	for _, p := range data.Profiles {
		byID[p.ID] = p
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="culture-passport-export.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, um := range data.UserMissions {
		p := byID[um.UserID]
		_ = w.Write([]string{
			um.UserID, p.FullName, p.Email, um.MissionID, string(um.Status),
			optInt(um.FeedbackScore), optTime(um.SubmittedAt), optTime(um.ReviewedAt),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.Log.WithError(err).Warn("failed to write csv export")
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func (h *Handler) PendingMissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.UserMissions)
	if !ok {
		return
	}
	items, err := h.UserMissions.List(c.Request.Context(), scope, store.UserMissionFilter{
		Status: string(models.StatusSubmitted),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) TeamMembers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.Profiles)
	if !ok {
		return
	}
	members, err := h.Profiles.List(c.Request.Context(), scope, store.ProfileFilter{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) MemberExamScores(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	scope, ok := h.scope(c, p, query.ExamScores)
	if !ok {
		return
	}
	scores, err := h.Exams.Scores(c.Request.Context(), scope, c.Param("memberId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	// the audit trail is optional; without it there is nothing to show
	if h.Audit == nil {
		c.JSON(http.StatusOK, []models.AuditLog{})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.Audit.List(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
