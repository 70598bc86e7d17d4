package query

import (
	"culture-passport/internal/auth"
	"culture-passport/internal/models"
)

// Target describes how rows of one table relate to the profile that owns them.
type Target struct {
	// OwnerColumn holds the owning profile id ("id" for profiles themselves).
	OwnerColumn string
	// DepartmentColumn is set when the row carries its own department_id;
	// otherwise the department is resolved through the owner's profile.
	DepartmentColumn string
}

var (
	Profiles     = Target{OwnerColumn: "id", DepartmentColumn: "department_id"}
	UserMissions = Target{OwnerColumn: "user_id"}
	ExamScores   = Target{OwnerColumn: "user_id"}
)

// Scope returns the predicates that restrict what p may see of t.
// departmentID is the manager's own department as looked up for this
// request; it is ignored for other roles.
//
// A manager without a department only sees rows they own, never an
// unscoped view.
func Scope(p auth.Principal, departmentID *string, t Target) Spec {
	var s Spec
	switch p.Role {
	case models.RoleAdmin:
		return s
	case models.RoleManager:
		if departmentID == nil || *departmentID == "" {
			return s.Eq(t.OwnerColumn, p.UserID)
		}
		if t.DepartmentColumn != "" {
			return s.Eq(t.DepartmentColumn, *departmentID)
		}
		return s.Where(t.OwnerColumn, In, Subquery{
			Table:  "profiles",
			Column: "id",
			Where:  []Predicate{{Column: "department_id", Op: Eq, Value: *departmentID}},
		})
	case models.RoleEmployee:
		return s.Eq(t.OwnerColumn, p.UserID)
	}
	// unknown roles see nothing
	return s.Where(t.OwnerColumn, In, []string{})
}
