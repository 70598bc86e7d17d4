package models

import "time"

type AuditLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	ActorID string `gorm:"type:uuid;index" json:"actor_id"`

	Entity   string `gorm:"size:50;not null" json:"entity"` // "profile", "mission", "user_mission"
	EntityID string `gorm:"size:64" json:"entity_id"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "deactivate", "review" ...
	Details  string `gorm:"type:text" json:"details"`
}
