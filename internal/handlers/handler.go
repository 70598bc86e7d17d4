package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"culture-passport/internal/auth"
	"culture-passport/internal/metrics"
	"culture-passport/internal/middleware"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

// Deps is everything the handlers need. Nil optional services (Storage,
// Revoker, Metrics) switch the matching feature off.
type Deps struct {
	Credentials   CredentialService
	Profiles      ProfileService
	Scoper        Scoper
	Missions      MissionService
	UserMissions  UserMissionService
	Companies     Resource[models.Company]
	Departments   Resource[models.Department]
	Positions     Resource[models.Position]
	Categories    Resource[models.Category]
	ExamTemplates Resource[models.ExamTemplate]
	Exams         ExamService
	Announcements AnnouncementService
	Roadmap       RoadmapService
	Admin         AdminService
	Audit         AuditService
	Storage       ObjectStorage
	Revoker       auth.Revoker
	Metrics       *metrics.Metrics
	Log           logrus.FieldLogger
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Revoker == nil {
		d.Revoker = auth.NoopRevoker{}
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return &Handler{Deps: d}
}

// respondError maps store and auth errors onto HTTP statuses with a JSON
// {"error": message} body. Nothing else is allowed to escape a handler.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidTransition):
		c.JSON(http.StatusNotFound, gin.H{"error": store.ErrInvalidTransition.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, store.ErrReferenced):
		c.JSON(http.StatusConflict, gin.H{"error": "referenced by other records"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
	default:
		h.Log.WithError(err).WithField("route", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// bindJSON decodes the body into v, answering 400 itself on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "invalid request body")
		return false
	}
	return true
}

// principal returns the authenticated caller. Routes are always mounted
// behind RequireAuth; a missing principal is answered with 401.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
	}
	return p, ok
}

// scope resolves the caller's visibility for t.
func (h *Handler) scope(c *gin.Context, p auth.Principal, t query.Target) (query.Spec, bool) {
	s, err := h.Scoper.Scope(c.Request.Context(), p, t)
	if err != nil {
		h.respondError(c, err)
		return query.Spec{}, false
	}
	return s, true
}

func (h *Handler) audit(c *gin.Context, p auth.Principal, entity, entityID, action, details string) {
	if h.Audit == nil {
		return
	}
	h.Audit.Record(c.Request.Context(), p.UserID, entity, entityID, action, details)
}

// splitIDs parses a comma separated id list such as ?user_ids=a,b.
func splitIDs(raw string) []string {
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
