package models

import "time"

type Mission struct {
	Base
	Title             string  `gorm:"size:255;not null" json:"title" validate:"required"`
	Description       string  `gorm:"type:text" json:"description"`
	CategoryID        *string `gorm:"type:uuid;index" json:"category_id"`
	EstimatedDuration string  `gorm:"size:50" json:"estimated_duration"`
	IsDeleted         bool    `gorm:"not null;index" json:"is_deleted"`

	Category *Category `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type MissionStatus string

const (
	StatusNotStarted MissionStatus = "not_started"
	StatusInProgress MissionStatus = "in_progress"
	StatusSubmitted  MissionStatus = "submitted"
	StatusApproved   MissionStatus = "approved"
	StatusRejected   MissionStatus = "rejected"
	StatusCancelled  MissionStatus = "cancelled"
)

func (s MissionStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusSubmitted,
		StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// UserMission is one employee's instance of a Mission.
type UserMission struct {
	Base
	MissionID string        `gorm:"type:uuid;not null;uniqueIndex:idx_user_missions_pair" json:"mission_id"`
	UserID    string        `gorm:"type:uuid;not null;uniqueIndex:idx_user_missions_pair;index" json:"user_id"`
	Status    MissionStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	SubmittedContent *string `gorm:"type:text" json:"submitted_content"`
	SubmittedFileURL *string `gorm:"type:text" json:"submitted_file_url"`

	FeedbackScore *int    `json:"feedback_score"`
	FeedbackText  *string `gorm:"type:text" json:"feedback_text"`
	ReviewedBy    *string `gorm:"type:uuid" json:"reviewed_by"`

	StartedAt   *time.Time `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Mission *Mission `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	User    *Profile `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
