package models

import (
	"time"

	"gorm.io/datatypes"
)

type ExamQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// nil when redacted for callers who take the exam
	CorrectIndex *int `json:"correct_index,omitempty"`
}

type ExamTemplate struct {
	Base
	Title        string                            `gorm:"size:255;not null" json:"title" validate:"required"`
	Description  string                            `gorm:"type:text" json:"description"`
	PassingScore int                               `gorm:"not null" json:"passing_score" validate:"gte=0,lte=100"`
	Questions    datatypes.JSONSlice[ExamQuestion] `gorm:"type:jsonb" json:"questions"`
}

// Grade scores answers as the percentage of correct ones, rounded down.
// answers[i] is the chosen option index for question i; missing answers
// count as wrong.
func (t *ExamTemplate) Grade(answers []int) (score int, passed bool) {
	if len(t.Questions) == 0 {
		return 0, t.PassingScore == 0
	}
	correct := 0
	for i, q := range t.Questions {
		if q.CorrectIndex == nil || i >= len(answers) {
			continue
		}
		if answers[i] == *q.CorrectIndex {
			correct++
		}
	}
	score = correct * 100 / len(t.Questions)
	return score, score >= t.PassingScore
}

// Redacted returns a copy without answer keys.
func (t ExamTemplate) Redacted() ExamTemplate {
	qs := make(datatypes.JSONSlice[ExamQuestion], len(t.Questions))
	for i, q := range t.Questions {
		q.CorrectIndex = nil
		qs[i] = q
	}
	t.Questions = qs
	return t
}

type ExamScore struct {
	Base
	UserID         string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExamTemplateID string    `gorm:"type:uuid;not null;index" json:"exam_template_id"`
	Score          int       `gorm:"not null" json:"score"`
	Passed         bool      `gorm:"not null" json:"passed"`
	TakenAt        time.Time `gorm:"not null" json:"taken_at"`

	User         *Profile      `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	ExamTemplate *ExamTemplate `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
