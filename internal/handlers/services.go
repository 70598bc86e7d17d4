package handlers

import (
	"context"
	"time"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

// The interfaces below are the slices of the store layer the handlers use.
// The concrete stores in internal/store satisfy them.

type CredentialService interface {
	Authenticate(ctx context.Context, email, password string) (*store.Session, error)
	CreateWithProfile(ctx context.Context, p *models.Profile, password string) error
}

type ProfileService interface {
	List(ctx context.Context, scope query.Spec, f store.ProfileFilter) ([]models.Profile, error)
	Get(ctx context.Context, id string, scope query.Spec) (*models.Profile, error)
	Update(ctx context.Context, id string, p store.ProfilePatch) (*models.Profile, error)
	UpdateOwn(ctx context.Context, id string, p store.OwnProfilePatch) (*models.Profile, error)
	Deactivate(ctx context.Context, id string) (*models.Profile, error)
}

type Scoper interface {
	Scope(ctx context.Context, p auth.Principal, t query.Target) (query.Spec, error)
}

// Resource is the generic CRUD surface shared by master data, missions,
// exam templates, announcements and roadmap milestones.
type Resource[T any] interface {
	List(ctx context.Context, filter query.Spec) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, id string, p store.Patch) (*T, error)
	Delete(ctx context.Context, id string) error
}

type MissionService interface {
	Resource[models.Mission]
	SoftDelete(ctx context.Context, id string) (int64, error)
}

type UserMissionService interface {
	List(ctx context.Context, scope query.Spec, f store.UserMissionFilter) ([]models.UserMission, error)
	Get(ctx context.Context, id string, scope query.Spec) (*models.UserMission, error)
	Assign(ctx context.Context, missionID string, userIDs []string) ([]models.UserMission, error)
	Start(ctx context.Context, id, userID string) (*models.UserMission, error)
	Submit(ctx context.Context, id, userID string, sub store.Submission) (*models.UserMission, error)
	Review(ctx context.Context, id, reviewerID string, scope query.Spec, r store.Review) (*models.UserMission, error)
}

type ExamService interface {
	Scores(ctx context.Context, scope query.Spec, userID string) ([]models.ExamScore, error)
	RecordAttempt(ctx context.Context, templateID, userID string, answers []int) (*models.ExamScore, error)
}

type AnnouncementService interface {
	Resource[models.Announcement]
	Active(ctx context.Context) ([]models.Announcement, error)
	Undismissed(ctx context.Context, userID string) ([]models.Announcement, error)
	Dismiss(ctx context.Context, announcementID, userID string) error
}

type RoadmapService interface {
	Resource[models.RoadmapMilestone]
	Timeline(ctx context.Context, profileID string) ([]models.ScheduledMilestone, error)
}

type AdminService interface {
	Overview(ctx context.Context, profileScope, ownedScope query.Spec) (*store.OverviewStats, error)
	Export(ctx context.Context, profileScope, ownedScope query.Spec, userIDs []string) (*store.ExportData, error)
}

type AuditService interface {
	Record(ctx context.Context, actorID, entity, entityID, action, details string)
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, bool)
}
