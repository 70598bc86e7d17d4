package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

type CredentialService struct{ mock.Mock }

func (m *CredentialService) Authenticate(ctx context.Context, email, password string) (*store.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Session), args.Error(1)
}

func (m *CredentialService) CreateWithProfile(ctx context.Context, p *models.Profile, password string) error {
	return m.Called(ctx, p, password).Error(0)
}

type ProfileService struct{ mock.Mock }

func (m *ProfileService) List(ctx context.Context, scope query.Spec, f store.ProfileFilter) ([]models.Profile, error) {
	args := m.Called(ctx, scope, f)
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *ProfileService) Get(ctx context.Context, id string, scope query.Spec) (*models.Profile, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileService) Update(ctx context.Context, id string, p store.ProfilePatch) (*models.Profile, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileService) UpdateOwn(ctx context.Context, id string, p store.OwnProfilePatch) (*models.Profile, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileService) Deactivate(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type Scoper struct{ mock.Mock }

func (m *Scoper) Scope(ctx context.Context, p auth.Principal, t query.Target) (query.Spec, error) {
	args := m.Called(ctx, p, t)
	return args.Get(0).(query.Spec), args.Error(1)
}

// Resource mocks the generic CRUD store for any model type.
type Resource[T any] struct{ mock.Mock }

func (m *Resource[T]) List(ctx context.Context, filter query.Spec) ([]T, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *Resource[T]) Create(ctx context.Context, v *T) error {
	return m.Called(ctx, v).Error(0)
}

func (m *Resource[T]) Update(ctx context.Context, id string, p store.Patch) (*T, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *Resource[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MissionService struct {
	Resource[models.Mission]
}

func (m *MissionService) SoftDelete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type UserMissionService struct{ mock.Mock }

func (m *UserMissionService) List(ctx context.Context, scope query.Spec, f store.UserMissionFilter) ([]models.UserMission, error) {
	args := m.Called(ctx, scope, f)
	return args.Get(0).([]models.UserMission), args.Error(1)
}

func (m *UserMissionService) Get(ctx context.Context, id string, scope query.Spec) (*models.UserMission, error) {
	return m.result(m.Called(ctx, id, scope))
}

func (m *UserMissionService) Assign(ctx context.Context, missionID string, userIDs []string) ([]models.UserMission, error) {
	args := m.Called(ctx, missionID, userIDs)
	return args.Get(0).([]models.UserMission), args.Error(1)
}

func (m *UserMissionService) Start(ctx context.Context, id, userID string) (*models.UserMission, error) {
	return m.result(m.Called(ctx, id, userID))
}

func (m *UserMissionService) Submit(ctx context.Context, id, userID string, sub store.Submission) (*models.UserMission, error) {
	return m.result(m.Called(ctx, id, userID, sub))
}

func (m *UserMissionService) Review(ctx context.Context, id, reviewerID string, scope query.Spec, r store.Review) (*models.UserMission, error) {
	return m.result(m.Called(ctx, id, reviewerID, scope, r))
}

func (m *UserMissionService) result(args mock.Arguments) (*models.UserMission, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMission), args.Error(1)
}

type ExamService struct{ mock.Mock }

func (m *ExamService) Scores(ctx context.Context, scope query.Spec, userID string) ([]models.ExamScore, error) {
	args := m.Called(ctx, scope, userID)
	return args.Get(0).([]models.ExamScore), args.Error(1)
}

func (m *ExamService) RecordAttempt(ctx context.Context, templateID, userID string, answers []int) (*models.ExamScore, error) {
	args := m.Called(ctx, templateID, userID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamScore), args.Error(1)
}

type AnnouncementService struct {
	Resource[models.Announcement]
}

func (m *AnnouncementService) Active(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *AnnouncementService) Undismissed(ctx context.Context, userID string) ([]models.Announcement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *AnnouncementService) Dismiss(ctx context.Context, announcementID, userID string) error {
	return m.Called(ctx, announcementID, userID).Error(0)
}

type RoadmapService struct {
	Resource[models.RoadmapMilestone]
}

func (m *RoadmapService) Timeline(ctx context.Context, profileID string) ([]models.ScheduledMilestone, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).([]models.ScheduledMilestone), args.Error(1)
}

type AdminService struct{ mock.Mock }

func (m *AdminService) Overview(ctx context.Context, profileScope, ownedScope query.Spec) (*store.OverviewStats, error) {
	args := m.Called(ctx, profileScope, ownedScope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.OverviewStats), args.Error(1)
}

func (m *AdminService) Export(ctx context.Context, profileScope, ownedScope query.Spec, userIDs []string) (*store.ExportData, error) {
	args := m.Called(ctx, profileScope, ownedScope, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ExportData), args.Error(1)
}

type AuditService struct{ mock.Mock }

func (m *AuditService) Record(ctx context.Context, actorID, entity, entityID, action, details string) {
	m.Called(ctx, actorID, entity, entityID, action, details)
}

func (m *AuditService) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.AuditLog), args.Error(1)
}
