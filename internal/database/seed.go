package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"culture-passport/internal/models"
)

// AdminProvisioner is the slice of the credential store seeding needs.
type AdminProvisioner interface {
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
	CreateWithProfile(ctx context.Context, p *models.Profile, password string) error
}

// SeedAdmin creates the first admin account when none exists yet. Nothing
// happens without a password.
func SeedAdmin(ctx context.Context, store AdminProvisioner, email, password string, log logrus.FieldLogger) error {
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping default admin seeding")
		return nil
	}

	count, err := store.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		// admin already exists
		return nil
	}

	admin := &models.Profile{
		FullName: "Administrator",
		Email:    email,
		Role:     models.RoleAdmin,
		Status:   models.ProfileActive,
	}
	if err := store.CreateWithProfile(ctx, admin, password); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.WithField("email", admin.Email).Info("created default admin user")
	return nil
}
