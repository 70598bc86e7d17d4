package store

import (
	"time"

	"gorm.io/datatypes"

	"culture-passport/internal/models"
)

type CompanyPatch struct {
	Name *string `json:"name" validate:"omitnil,min=1"`
}

func (p CompanyPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", p.Name)
	return m
}

type DepartmentPatch struct {
	Name      *string `json:"name" validate:"omitnil,min=1"`
	CompanyID *string `json:"company_id" validate:"omitnil,min=1"`
}

func (p DepartmentPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", p.Name)
	set(m, "company_id", p.CompanyID)
	return m
}

type PositionPatch struct {
	Name         *string `json:"name" validate:"omitnil,min=1"`
	DepartmentID *string `json:"department_id" validate:"omitnil,min=1"`
}

func (p PositionPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", p.Name)
	set(m, "department_id", p.DepartmentID)
	return m
}

type CategoryPatch struct {
	Name  *string `json:"name" validate:"omitnil,min=1"`
	Color *string `json:"color"`
}

func (p CategoryPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", p.Name)
	set(m, "color", p.Color)
	return m
}

type MissionPatch struct {
	Title             *string `json:"title" validate:"omitnil,min=1"`
	Description       *string `json:"description"`
	CategoryID        *string `json:"category_id"`
	EstimatedDuration *string `json:"estimated_duration"`
}

func (p MissionPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "title", p.Title)
	set(m, "description", p.Description)
	set(m, "category_id", p.CategoryID)
	set(m, "estimated_duration", p.EstimatedDuration)
	return m
}

type ExamTemplatePatch struct {
	Title        *string                `json:"title" validate:"omitnil,min=1"`
	Description  *string                `json:"description"`
	PassingScore *int                   `json:"passing_score" validate:"omitnil,gte=0,lte=100"`
	Questions    *[]models.ExamQuestion `json:"questions"`
}

func (p ExamTemplatePatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "title", p.Title)
	set(m, "description", p.Description)
	set(m, "passing_score", p.PassingScore)
	if p.Questions != nil {
		m["questions"] = datatypes.JSONSlice[models.ExamQuestion](*p.Questions)
	}
	return m
}

type AnnouncementPatch struct {
	Title       *string    `json:"title" validate:"omitnil,min=1"`
	Content     *string    `json:"content" validate:"omitnil,min=1"`
	IsActive    *bool      `json:"is_active"`
	PublishedAt *time.Time `json:"published_at"`
}

func (p AnnouncementPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "title", p.Title)
	set(m, "content", p.Content)
	set(m, "is_active", p.IsActive)
	set(m, "published_at", p.PublishedAt)
	return m
}

type RoadmapPatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	TargetDay   *int    `json:"target_day" validate:"omitnil,gte=0"`
	SortOrder   *int    `json:"sort_order"`
}

func (p RoadmapPatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "title", p.Title)
	set(m, "description", p.Description)
	set(m, "target_day", p.TargetDay)
	set(m, "sort_order", p.SortOrder)
	return m
}

// Patches carry the same rules as the models they update: a field that is
// required on create can be left out of a patch but never blanked.

// ProfilePatch is the admin edit. Role and status values are checked
// before anything is written.
type ProfilePatch struct {
	FullName       *string               `json:"full_name" validate:"omitnil,min=1"`
	Role           *models.UserRole      `json:"role"`
	Status         *models.ProfileStatus `json:"status"`
	CompanyID      *string               `json:"company_id"`
	DepartmentID   *string               `json:"department_id"`
	PositionID     *string               `json:"position_id"`
	ProbationStart *time.Time            `json:"probation_start"`
	ProbationEnd   *time.Time            `json:"probation_end"`
}

func (p ProfilePatch) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.Role != nil && !p.Role.Valid() {
		return &ValidationError{Field: "role", Rule: "oneof"}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Rule: "oneof"}
	}
	return nil
}

func (p ProfilePatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "full_name", p.FullName)
	set(m, "role", p.Role)
	set(m, "status", p.Status)
	set(m, "company_id", p.CompanyID)
	set(m, "department_id", p.DepartmentID)
	set(m, "position_id", p.PositionID)
	set(m, "probation_start", p.ProbationStart)
	set(m, "probation_end", p.ProbationEnd)
	return m
}

// OwnProfilePatch is what a user may change on their own profile.
type OwnProfilePatch struct {
	FullName *string `json:"full_name"`
}

func (p OwnProfilePatch) Changes() map[string]any {
	m := map[string]any{}
	set(m, "full_name", p.FullName)
	return m
}
