package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
)

// Session is what a successful login returns.
type Session struct {
	AccessToken string         `json:"access_token"`
	Profile     models.Profile `json:"profile"`
}

// CredentialStore owns password hashes. It is the only code that reads the
// credentials table.
type CredentialStore struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	tokens *auth.TokenService
	// compared against when the email is unknown so that lookups cost the same
	dummyHash string
}

func NewCredentialStore(db *gorm.DB, hasher auth.PasswordHasher, tokens *auth.TokenService) (*CredentialStore, error) {
	dummy, err := hasher.Hash("culture-passport-timing-guard")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &CredentialStore{db: db, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateWithProfile inserts the profile and its credential in one
// transaction. A failure on either insert leaves neither row behind.
func (s *CredentialStore) CreateWithProfile(ctx context.Context, p *models.Profile, password string) error {
	p.Email = normalizeEmail(p.Email)
	if p.Status == "" {
		p.Status = models.ProfileActive
	}
	if err := validateStruct(p); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "password", Rule: "required"}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return translateWrite(err)
		}
		cred := models.Credential{ProfileID: p.ID, PasswordHash: hash}
		if err := tx.Create(&cred).Error; err != nil {
			return fmt.Errorf("store credential: %w", translate(err))
		}
		return nil
	})
}

type loginRow struct {
	models.Profile
	PasswordHash string
}

// Authenticate returns nil without an error for an unknown email, an
// inactive profile and a wrong password alike.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var row loginRow
	res := s.db.WithContext(ctx).Table("profiles").
		Select("profiles.*, credentials.password_hash").
		Joins("JOIN credentials ON credentials.profile_id = profiles.id").
		Where("profiles.email = ? AND profiles.status = ?", normalizeEmail(email), models.ProfileActive).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("look up credentials: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		s.hasher.Compare(s.dummyHash, password)
		return nil, nil
	}
	if !s.hasher.Compare(row.PasswordHash, password) {
		return nil, nil
	}

	token, err := s.tokens.Issue(auth.Principal{
		UserID: row.ID,
		Email:  row.Email,
		Role:   row.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{AccessToken: token, Profile: row.Profile}, nil
}

// SetPassword replaces the hash for an existing profile.
func (s *CredentialStore) SetPassword(ctx context.Context, profileID, password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Rule: "required"}
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&models.Credential{}).
		Where("profile_id = ?", profileID).
		Update("password_hash", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRole reports how many profiles hold role, used for first-run seeding.
func (s *CredentialStore) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("role = ?", role).Count(&n).Error
	return n, err
}
