package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"culture-passport/internal/lifecycle"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type MissionFilter struct {
	CategoryID string `form:"category_id"`
}

func (f MissionFilter) Spec() query.Spec {
	return query.Spec{}.EqIfSet("category_id", f.CategoryID)
}

// MissionStore hides soft-deleted missions from every read and write.
type MissionStore struct {
	*Resource[models.Mission]
}

func NewMissionStore(db *gorm.DB) *MissionStore {
	r := NewResource[models.Mission](db, "missions", "created_at desc")
	r.live = query.Spec{}.Eq("is_deleted", false)
	return &MissionStore{Resource: r}
}

func (s *MissionStore) Create(ctx context.Context, m *models.Mission) error {
	m.IsDeleted = false
	return s.Resource.Create(ctx, m)
}

// Delete is a soft delete; see SoftDelete.
func (s *MissionStore) Delete(ctx context.Context, id string) error {
	_, err := s.SoftDelete(ctx, id)
	return err
}

// SoftDelete flags the mission deleted and cancels its assignments that are
// still not_started or in_progress. Submitted, reviewed and cancelled
// assignments keep their status. It returns the number cancelled.
func (s *MissionStore) SoftDelete(ctx context.Context, id string) (int64, error) {
	var cancelled int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Mission{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		res = tx.Model(&models.UserMission{}).
			Where("mission_id = ? AND status IN ?", id, lifecycle.Sources(lifecycle.Cancel)).
			Update("status", lifecycle.Target(lifecycle.Cancel))
		if res.Error != nil {
			return fmt.Errorf("cancel assignments: %w", res.Error)
		}
		cancelled = res.RowsAffected
		return nil
	})
	return cancelled, err
}

// Exists reports whether a live mission with id exists.
func (s *MissionStore) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := s.live.Eq("id", id).Apply(s.db.WithContext(ctx).Model(&models.Mission{})).Count(&n).Error
	return n > 0, err
}
