package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// ProfileFilter holds the optional listing filters. An empty Status means
// active profiles only.
type ProfileFilter struct {
	Role         string `form:"role"`
	Status       string `form:"status"`
	CompanyID    string `form:"company_id"`
	DepartmentID string `form:"department_id"`
	PositionID   string `form:"position_id"`
}

func (f ProfileFilter) Spec() query.Spec {
	s := query.Spec{}.
		EqIfSet("role", f.Role).
		EqIfSet("company_id", f.CompanyID).
		EqIfSet("department_id", f.DepartmentID).
		EqIfSet("position_id", f.PositionID)
	if f.Status == "" {
		return s.Eq("status", models.ProfileActive)
	}
	return s.Eq("status", f.Status)
}

func (s *ProfileStore) List(ctx context.Context, scope query.Spec, f ProfileFilter) ([]models.Profile, error) {
	spec := f.Spec().And(scope).OrderBy("full_name asc")
	var out []models.Profile
	if err := spec.Apply(s.db.WithContext(ctx).Model(&models.Profile{})).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

// Get returns ErrNotFound both for missing ids and for ids outside scope.
func (s *ProfileStore) Get(ctx context.Context, id string, scope query.Spec) (*models.Profile, error) {
	var p models.Profile
	err := scope.Eq("id", id).Apply(s.db.WithContext(ctx).Model(&models.Profile{})).Take(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProfileStore) DepartmentOf(ctx context.Context, id string) (*string, error) {
	var row struct {
		DepartmentID *string
	}
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Select("department_id").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row.DepartmentID, nil
}

func (s *ProfileStore) Update(ctx context.Context, id string, p ProfilePatch) (*models.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.update(ctx, id, p)
}

func (s *ProfileStore) UpdateOwn(ctx context.Context, id string, p OwnProfilePatch) (*models.Profile, error) {
	if p.FullName != nil && *p.FullName == "" {
		return nil, &ValidationError{Field: "full_name", Rule: "required"}
	}
	return s.update(ctx, id, p)
}

func (s *ProfileStore) Deactivate(ctx context.Context, id string) (*models.Profile, error) {
	status := models.ProfileInactive
	return s.update(ctx, id, ProfilePatch{Status: &status})
}

func (s *ProfileStore) update(ctx context.Context, id string, p Patch) (*models.Profile, error) {
	if changes := p.Changes(); len(changes) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, updateError(res.Error, id)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.Get(ctx, id, query.Spec{})
}
