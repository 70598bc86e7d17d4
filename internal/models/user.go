package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "active"
	ProfileInactive ProfileStatus = "inactive"
)

func (s ProfileStatus) Valid() bool {
	return s == ProfileActive || s == ProfileInactive
}

// Profile is never hard-deleted; deactivation flips Status.
type Profile struct {
	Base
	FullName string        `gorm:"size:255;not null" json:"full_name" validate:"required"`
	Email    string        `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Role     UserRole      `gorm:"type:varchar(20);not null;index" json:"role" validate:"required,oneof=admin manager employee"`
	Status   ProfileStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	CompanyID    *string `gorm:"type:uuid;index" json:"company_id"`
	DepartmentID *string `gorm:"type:uuid;index" json:"department_id"`
	PositionID   *string `gorm:"type:uuid;index" json:"position_id"`

	ProbationStart *time.Time `gorm:"type:date" json:"probation_start"`
	ProbationEnd   *time.Time `gorm:"type:date" json:"probation_end"`

	Company    *Company    `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Department *Department `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Position   *Position   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// Credential lives in its own table so profile reads never carry the hash.
type Credential struct {
	ProfileID    string `gorm:"type:uuid;primaryKey"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE"`
}
