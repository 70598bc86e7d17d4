package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

type ExamStore struct {
	Templates *Resource[models.ExamTemplate]
	db        *gorm.DB
}

func NewExamStore(db *gorm.DB) *ExamStore {
	return &ExamStore{
		Templates: NewResource[models.ExamTemplate](db, "exam templates", "title asc"),
		db:        db,
	}
}

func (s *ExamStore) Scores(ctx context.Context, scope query.Spec, userID string) ([]models.ExamScore, error) {
	spec := query.Spec{}.EqIfSet("user_id", userID).And(scope).OrderBy("taken_at desc")
	var out []models.ExamScore
	if err := spec.Apply(s.db.WithContext(ctx).Model(&models.ExamScore{})).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list exam scores: %w", err)
	}
	return out, nil
}

// RecordAttempt grades answers against the template and stores the result
// for userID.
func (s *ExamStore) RecordAttempt(ctx context.Context, templateID, userID string, answers []int) (*models.ExamScore, error) {
	tmpl, err := s.Templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	score, passed := tmpl.Grade(answers)
	rec := models.ExamScore{
		UserID:         userID,
		ExamTemplateID: tmpl.ID,
		Score:          score,
		Passed:         passed,
		TakenAt:        time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("record exam score: %w", translateWrite(err))
	}
	return &rec, nil
}
