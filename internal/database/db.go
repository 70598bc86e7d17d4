package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"culture-passport/internal/models"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// GormConfig is shared by the server and the store tests. Single statements
// run without an implicit transaction; multi-statement work opens its own.
// Driver errors reach the store untranslated so it can read the pg column.
func GormConfig(log logrus.FieldLogger) *gorm.Config {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
		Logger:                 logger.Discard,
	}
	if log != nil {
		cfg.Logger = logger.New(log, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	return cfg
}

// Open connects to postgres, retrying while the database comes up.
func Open(ctx context.Context, dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), GormConfig(log))
		if err == nil {
			log.Info("connected to DB successfully")
			return db, nil
		}
		log.WithError(err).Warn("failed to connect to DB")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
}

// Migrate creates or updates every table. Parents come before the tables
// that reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Department{},
		&models.Position{},
		&models.Category{},
		&models.Profile{},
		&models.Credential{},
		&models.Mission{},
		&models.UserMission{},
		&models.ExamTemplate{},
		&models.ExamScore{},
		&models.RoadmapMilestone{},
		&models.Announcement{},
		&models.AnnouncementDismissal{},
		&models.AuditLog{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
