package auth

import "culture-passport/internal/models"

// Principal is the authenticated caller. Handlers pass it explicitly to
// every store call that depends on who is asking.
type Principal struct {
	UserID string          `json:"id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
}

func (p Principal) HasRole(roles ...models.UserRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// Reviewer reports whether p may review submissions.
func (p Principal) Reviewer() bool {
	return p.HasRole(models.RoleAdmin, models.RoleManager)
}
