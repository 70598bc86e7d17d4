package models

import (
	"time"

	"gorm.io/gorm"
)

type Announcement struct {
	Base
	Title       string     `gorm:"size:255;not null" json:"title" validate:"required"`
	Content     string     `gorm:"type:text;not null" json:"content" validate:"required"`
	IsActive    bool       `gorm:"not null;index" json:"is_active"`
	PublishedAt *time.Time `json:"published_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if err := a.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	return nil
}

// AnnouncementDismissal is a per-user read receipt.
type AnnouncementDismissal struct {
	AnnouncementID string    `gorm:"type:uuid;primaryKey" json:"announcement_id"`
	UserID         string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	DismissedAt    time.Time `gorm:"not null" json:"dismissed_at"`

	Announcement *Announcement `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User         *Profile      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
