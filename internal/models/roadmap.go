package models

import "time"

// RoadmapMilestone is part of the generic onboarding timeline; TargetDay is
// an offset in days from an employee's probation start.
type RoadmapMilestone struct {
	Base
	Title       string `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	TargetDay   int    `gorm:"not null" json:"target_day" validate:"gte=0"`
	SortOrder   int    `gorm:"not null" json:"sort_order"`
}

type ScheduledMilestone struct {
	RoadmapMilestone
	DueDate *time.Time `json:"due_date"`
}

// Schedule anchors milestones to a probation start date. Due dates stay nil
// when the start is unknown.
func Schedule(milestones []RoadmapMilestone, probationStart *time.Time) []ScheduledMilestone {
	out := make([]ScheduledMilestone, 0, len(milestones))
	for _, m := range milestones {
		sm := ScheduledMilestone{RoadmapMilestone: m}
		if probationStart != nil {
			due := probationStart.AddDate(0, 0, m.TargetDay)
			sm.DueDate = &due
		}
		out = append(out, sm)
	}
	return out
}
