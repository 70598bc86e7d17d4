package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type AnnouncementStore struct {
	*Resource[models.Announcement]
}

func NewAnnouncementStore(db *gorm.DB) *AnnouncementStore {
	return &AnnouncementStore{
		Resource: NewResource[models.Announcement](db, "announcements", "published_at desc"),
	}
}

// Active lists announcements currently shown to users.
func (s *AnnouncementStore) Active(ctx context.Context) ([]models.Announcement, error) {
	return s.List(ctx, query.Spec{}.Eq("is_active", true))
}

// Undismissed lists active announcements userID has not dismissed yet.
func (s *AnnouncementStore) Undismissed(ctx context.Context, userID string) ([]models.Announcement, error) {
	return s.List(ctx, query.Spec{}.
		Eq("is_active", true).
		Where("id", query.NotIn, query.Subquery{
			Table:  "announcement_dismissals",
			Column: "announcement_id",
			Where:  []query.Predicate{{Column: "user_id", Op: query.Eq, Value: userID}},
		}))
}

// Dismiss records a read receipt. Dismissing twice is not an error.
func (s *AnnouncementStore) Dismiss(ctx context.Context, announcementID, userID string) error {
	if _, err := s.Get(ctx, announcementID); err != nil {
		return err
	}
	d := models.AnnouncementDismissal{
		AnnouncementID: announcementID,
		UserID:         userID,
		DismissedAt:    time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&d).Error
	if err != nil {
		return fmt.Errorf("dismiss announcement: %w", translateWrite(err))
	}
	return nil
}
