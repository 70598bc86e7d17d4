package store

import (
	"context"
	"errors"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

// Scoper resolves the role-scoping predicates for a caller. Managers need
// their department looked up on every request.
type Scoper struct {
	profiles *ProfileStore
}

func NewScoper(profiles *ProfileStore) *Scoper {
	return &Scoper{profiles: profiles}
}

func (s *Scoper) Scope(ctx context.Context, p auth.Principal, t query.Target) (query.Spec, error) {
	if p.Role != models.RoleManager {
		return query.Scope(p, nil, t), nil
	}
	dept, err := s.profiles.DepartmentOf(ctx, p.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return query.Spec{}, err
	}
	return query.Scope(p, dept, t), nil
}
