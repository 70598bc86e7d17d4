package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"culture-passport/internal/models"
)

// AuditStore writes the audit journal. Recording is best effort: a failed
// write is logged and never fails the request that caused it.
type AuditStore struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewAuditStore(db *gorm.DB, log logrus.FieldLogger) *AuditStore {
	return &AuditStore{db: db, log: log}
}

func (s *AuditStore) Record(ctx context.Context, actorID, entity, entityID, action, details string) {
	if s == nil || s.db == nil {
		return
	}
	rec := models.AuditLog{
		ID:       uuid.NewString(),
		ActorID:  actorID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"entity": entity,
			"action": action,
		}).Warn("failed to write audit log")
	}
}

func (s *AuditStore) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}
