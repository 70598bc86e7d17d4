package store

import (
	"context"

	"gorm.io/gorm"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type RoadmapStore struct {
	*Resource[models.RoadmapMilestone]
	profiles *ProfileStore
}

func NewRoadmapStore(db *gorm.DB, profiles *ProfileStore) *RoadmapStore {
	return &RoadmapStore{
		Resource: NewResource[models.RoadmapMilestone](db, "roadmap milestones", "sort_order asc, target_day asc"),
		profiles: profiles,
	}
}

// Timeline returns the milestones with due dates for one profile's probation.
func (s *RoadmapStore) Timeline(ctx context.Context, profileID string) ([]models.ScheduledMilestone, error) {
	p, err := s.profiles.Get(ctx, profileID, query.Spec{})
	if err != nil {
		return nil, err
	}
	milestones, err := s.List(ctx, query.Spec{})
	if err != nil {
		return nil, err
	}
	return models.Schedule(milestones, p.ProbationStart), nil
}
