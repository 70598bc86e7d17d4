package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/auth"
	"culture-passport/internal/config"
	"culture-passport/internal/handlers"
	"culture-passport/internal/middleware"
	"culture-passport/internal/models"
)

// crudRoutes mounts list/get for any authenticated caller and the writes
// behind the given roles.
type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func mountCRUD(g *gin.RouterGroup, r crudRoutes, writers ...models.UserRole) {
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.POST("", middleware.RequireRole(writers...), r.Create)
	g.PUT("/:id", middleware.RequireRole(writers...), r.Update)
	g.DELETE("/:id", middleware.RequireRole(writers...), r.Delete)
}

func NewRouter(cfg *config.Config, h *handlers.Handler, tokens *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(h.Log))
	r.Use(middleware.Metrics(h.Metrics))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	admin := middleware.RequireRole(models.RoleAdmin)
	reviewers := middleware.RequireRole(models.RoleAdmin, models.RoleManager)

	// AUTH
	r.POST("/auth/login", h.Login)

	api := r.Group("/")
	api.Use(middleware.RequireAuth(tokens, h.Revoker, h.Log))

	api.GET("/auth/session", h.Session)
	api.POST("/auth/logout", h.Logout)

	// PROFILES
	api.GET("/profiles", h.ListProfiles)
	api.PUT("/profiles/me", h.UpdateOwnProfile)
	api.GET("/profiles/:id", h.GetProfile)
	api.PUT("/profiles/:id", admin, h.UpdateProfile)
	api.PUT("/profiles/:id/deactivate", admin, h.DeactivateProfile)

	// MISSIONS
	missions := h.MissionCRUD()
	api.GET("/missions", missions.List)
	api.GET("/missions/:id", missions.Get)
	api.POST("/missions", admin, missions.Create)
	api.PUT("/missions/:id", admin, missions.Update)
	api.DELETE("/missions/:id", admin, h.DeleteMission)

	// USER MISSIONS
	api.GET("/user-missions", h.ListUserMissions)
	api.GET("/user-missions/:id", h.GetUserMission)
	api.POST("/user-missions/assign", admin, h.AssignMission)
	// start/submit are checked against the owner in the store
	api.PUT("/user-missions/:id/start", h.StartUserMission)
	api.PUT("/user-missions/:id/submit", h.SubmitUserMission)
	api.PUT("/user-missions/:id/review", reviewers, h.ReviewUserMission)

	// MASTER DATA
	mountCRUD(api.Group("/master-data/companies"), h.CompanyCRUD(), models.RoleAdmin)
	mountCRUD(api.Group("/master-data/departments"), h.DepartmentCRUD(), models.RoleAdmin)
	mountCRUD(api.Group("/master-data/positions"), h.PositionCRUD(), models.RoleAdmin)
	mountCRUD(api.Group("/master-data/categories"), h.CategoryCRUD(), models.RoleAdmin)

	// EXAMS
	mountCRUD(api.Group("/exams/templates"), h.ExamTemplateCRUD(), models.RoleAdmin)
	api.POST("/exams/templates/:id/attempts", h.SubmitExamAttempt)
	api.GET("/exams/scores", h.ListExamScores)

	// ANNOUNCEMENTS
	announcements := h.AnnouncementCRUD()
	api.GET("/announcements", h.ListAnnouncements)
	api.GET("/announcements/undismissed", h.UndismissedAnnouncements)
	api.GET("/announcements/:id", h.GetAnnouncement)
	api.POST("/announcements", admin, h.CreateAnnouncement)
	api.PUT("/announcements/:id", admin, announcements.Update)
	api.DELETE("/announcements/:id", admin, announcements.Delete)
	api.POST("/announcements/:id/dismiss", h.DismissAnnouncement)

	// ROADMAP
	roadmap := api.Group("/roadmap")
	roadmap.GET("/me", h.MyRoadmap)
	mountCRUD(roadmap, h.RoadmapCRUD(), models.RoleAdmin)

	// STORAGE
	api.POST("/storage/upload", h.UploadFile)
	api.GET("/storage/public-url", h.PublicURL)
	api.GET("/storage/signed-url", h.SignedURL)

	// ADMIN
	api.POST("/admin/create-user", admin, h.CreateUser)
	api.GET("/admin/audit-logs", admin, h.ListAuditLogs)
	api.GET("/admin/overview-stats", reviewers, h.OverviewStats)
	api.GET("/admin/export-data", reviewers, h.ExportData)
	api.GET("/admin/pending-missions", reviewers, h.PendingMissions)
	api.GET("/admin/team-members", reviewers, h.TeamMembers)
	api.GET("/admin/member-exam-scores/:memberId", reviewers, h.MemberExamScores)

	return r
}
