package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"culture-passport/internal/lifecycle"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type UserMissionFilter struct {
	UserID    string `form:"user_id"`
	Status    string `form:"status"`
	MissionID string `form:"mission_id"`
}

func (f UserMissionFilter) Spec() query.Spec {
	return query.Spec{}.
		EqIfSet("user_id", f.UserID).
		EqIfSet("status", f.Status).
		EqIfSet("mission_id", f.MissionID)
}

type Submission struct {
	Content *string `json:"submitted_content"`
	FileURL *string `json:"submitted_file_url"`
}

type Review struct {
	Approved bool    `json:"approved"`
	Score    *int    `json:"score"`
	Feedback *string `json:"feedback"`
}

// UserMissionStore persists the mission lifecycle. Every transition is one
// UPDATE guarded by the allowed source statuses, so of two concurrent
// attempts at the same transition only one can match.
type UserMissionStore struct {
	db       *gorm.DB
	missions *MissionStore
	now      func() time.Time
}

func NewUserMissionStore(db *gorm.DB, missions *MissionStore) *UserMissionStore {
	return &UserMissionStore{
		db:       db,
		missions: missions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserMissionStore) List(ctx context.Context, scope query.Spec, f UserMissionFilter) ([]models.UserMission, error) {
	spec := f.Spec().And(scope).OrderBy("created_at desc")
	var out []models.UserMission
	if err := spec.Apply(s.db.WithContext(ctx).Model(&models.UserMission{})).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list user missions: %w", err)
	}
	return out, nil
}

func (s *UserMissionStore) Get(ctx context.Context, id string, scope query.Spec) (*models.UserMission, error) {
	var um models.UserMission
	err := scope.Eq("id", id).Apply(s.db.WithContext(ctx).Model(&models.UserMission{})).Take(&um).Error
	if err != nil {
		return nil, translate(err)
	}
	return &um, nil
}

// Assign creates not_started assignments of missionID for each user.
// Existing (mission, user) pairs are skipped silently; only newly created
// rows are returned.
func (s *UserMissionStore) Assign(ctx context.Context, missionID string, userIDs []string) ([]models.UserMission, error) {
	if missionID == "" {
		return nil, &ValidationError{Field: "mission_id", Rule: "required"}
	}
	if len(userIDs) == 0 {
		return nil, &ValidationError{Field: "user_ids", Rule: "required"}
	}
	ok, err := s.missions.Exists(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	created := make([]models.UserMission, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, uid := range userIDs {
		if _, dup := seen[uid]; dup || uid == "" {
			continue
		}
		seen[uid] = struct{}{}

		um := models.UserMission{
			MissionID: missionID,
			UserID:    uid,
			Status:    lifecycle.Target(lifecycle.Assign),
		}
		res := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "mission_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&um)
		if err := translate(res.Error); err != nil {
			if errors.Is(err, ErrReferenced) {
				return created, &ValidationError{Field: "user_ids", Rule: "exists"}
			}
			return created, err
		}
		if res.RowsAffected == 1 {
			created = append(created, um)
		}
	}
	return created, nil
}

// Start moves the caller's own assignment from not_started to in_progress.
func (s *UserMissionStore) Start(ctx context.Context, id, userID string) (*models.UserMission, error) {
	now := s.now()
	return s.transition(ctx, id, lifecycle.Start, query.Spec{}.Eq("user_id", userID), map[string]any{
		"started_at": &now,
	})
}

// Submit stores the caller's work, replacing any earlier submission.
func (s *UserMissionStore) Submit(ctx context.Context, id, userID string, sub Submission) (*models.UserMission, error) {
	now := s.now()
	return s.transition(ctx, id, lifecycle.Submit, query.Spec{}.Eq("user_id", userID), map[string]any{
		"submitted_content":  sub.Content,
		"submitted_file_url": sub.FileURL,
		"submitted_at":       &now,
	})
}

// Review approves or rejects a submitted assignment within the reviewer's scope.
func (s *UserMissionStore) Review(ctx context.Context, id, reviewerID string, scope query.Spec, r Review) (*models.UserMission, error) {
	if r.Score != nil && (*r.Score < 0 || *r.Score > 100) {
		return nil, &ValidationError{Field: "score", Rule: "range"}
	}
	now := s.now()
	return s.transition(ctx, id, lifecycle.ReviewEvent(r.Approved), scope, map[string]any{
		"feedback_score": r.Score,
		"feedback_text":  r.Feedback,
		"reviewed_by":    &reviewerID,
		"reviewed_at":    &now,
	})
}

func (s *UserMissionStore) transition(ctx context.Context, id string, ev lifecycle.Event, guard query.Spec, changes map[string]any) (*models.UserMission, error) {
	changes["status"] = lifecycle.Target(ev)
	spec := guard.Eq("id", id).In("status", lifecycle.Sources(ev))

	var um models.UserMission
	res := spec.Apply(s.db.WithContext(ctx).Model(&um)).
		Clauses(clause.Returning{}).
		Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("%s user mission: %w", ev, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}
	return &um, nil
}
