package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type OverviewStats struct {
	ActiveEmployees    int64   `json:"active_employees"`
	TotalMissions      int64   `json:"total_missions"`
	PendingSubmissions int64   `json:"pending_submissions"`
	ApprovedMissions   int64   `json:"approved_missions"`
	AverageExamScore   float64 `json:"average_exam_score"`
}

type ExportData struct {
	Profiles     []models.Profile     `json:"profiles"`
	UserMissions []models.UserMission `json:"user_missions"`
	ExamScores   []models.ExamScore   `json:"exam_scores"`
}

// AdminStore aggregates across tables for the admin dashboard.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Overview counts within the caller's scope. profileScope targets profiles,
// ownedScope targets rows owned through user_id.
func (s *AdminStore) Overview(ctx context.Context, profileScope, ownedScope query.Spec) (*OverviewStats, error) {
	var out OverviewStats
	db := s.db.WithContext(ctx)

	counts := []struct {
		model any
		spec  query.Spec
		dest  *int64
	}{
		{&models.Profile{}, query.Spec{}.
			Eq("role", models.RoleEmployee).
			Eq("status", models.ProfileActive).
			And(profileScope), &out.ActiveEmployees},
		{&models.Mission{}, query.Spec{}.Eq("is_deleted", false), &out.TotalMissions},
		{&models.UserMission{}, query.Spec{}.Eq("status", models.StatusSubmitted).And(ownedScope), &out.PendingSubmissions},
		{&models.UserMission{}, query.Spec{}.Eq("status", models.StatusApproved).And(ownedScope), &out.ApprovedMissions},
	}
	for _, c := range counts {
		if err := c.spec.Apply(db.Model(c.model)).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("overview count: %w", err)
		}
	}

	var avg struct{ Avg float64 }
	err := ownedScope.Apply(db.Model(&models.ExamScore{})).
		Select("COALESCE(AVG(score), 0) AS avg").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("overview average score: %w", err)
	}
	out.AverageExamScore = avg.Avg
	return &out, nil
}

// Export collects everything recorded for userIDs that lies within scope.
// An empty userIDs exports every profile in scope.
func (s *AdminStore) Export(ctx context.Context, profileScope, ownedScope query.Spec, userIDs []string) (*ExportData, error) {
	db := s.db.WithContext(ctx)
	profiles, owned := profileScope, ownedScope
	if len(userIDs) > 0 {
		profiles = profiles.In("id", userIDs)
		owned = owned.In("user_id", userIDs)
	}

	var out ExportData
	if err := profiles.OrderBy("full_name asc").Apply(db.Model(&models.Profile{})).Find(&out.Profiles).Error; err != nil {
		return nil, fmt.Errorf("export profiles: %w", err)
	}
	if err := owned.OrderBy("created_at asc").Apply(db.Model(&models.UserMission{})).Find(&out.UserMissions).Error; err != nil {
		return nil, fmt.Errorf("export user missions: %w", err)
	}
	if err := owned.OrderBy("taken_at asc").Apply(db.Model(&models.ExamScore{})).Find(&out.ExamScores).Error; err != nil {
		return nil, fmt.Errorf("export exam scores: %w", err)
	}
	return &out, nil
}
