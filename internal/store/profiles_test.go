package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culture-passport/internal/auth"
	"culture-passport/internal/models"
	"culture-passport/internal/query"
)

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "email", "role", "status", "department_id"})
}

func TestManagerCannotWidenProfileScope(t *testing.T) {
	db, mock := newMockDB(t)
	profiles := NewProfileStore(db)
	scoper := NewScoper(profiles)
	manager := auth.Principal{UserID: "mgr", Role: models.RoleManager}

	mock.ExpectQuery(`SELECT "department_id" FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow("d1"))
	// the explicit department filter is ANDed with the caller's own department
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE "department_id" = \$1 AND "status" = \$2 AND "department_id" = \$3 ORDER BY full_name asc`).
		WithArgs("d2", "active", "d1").
		WillReturnRows(profileRows())

	scope, err := scoper.Scope(context.Background(), manager, query.Profiles)
	require.NoError(t, err)
	got, err := profiles.List(context.Background(), scope, ProfileFilter{DepartmentID: "d2"})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoperManagerWithoutDepartment(t *testing.T) {
	db, mock := newMockDB(t)
	scoper := NewScoper(NewProfileStore(db))
	manager := auth.Principal{UserID: "mgr", Role: models.RoleManager}

	mock.ExpectQuery(`SELECT "department_id" FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow(nil))

	scope, err := scoper.Scope(context.Background(), manager, query.UserMissions)
	require.NoError(t, err)
	assert.Equal(t, []query.Predicate{{Column: "user_id", Op: query.Eq, Value: "mgr"}}, scope.Predicates)
}

func TestScoperSkipsLookupForOtherRoles(t *testing.T) {
	db, mock := newMockDB(t)
	scoper := NewScoper(NewProfileStore(db))

	admin, err := scoper.Scope(context.Background(), auth.Principal{UserID: "a", Role: models.RoleAdmin}, query.Profiles)
	require.NoError(t, err)
	assert.True(t, admin.Empty())

	emp, err := scoper.Scope(context.Background(), auth.Principal{UserID: "e", Role: models.RoleEmployee}, query.Profiles)
	require.NoError(t, err)
	assert.Equal(t, []query.Predicate{{Column: "id", Op: query.Eq, Value: "e"}}, emp.Predicates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileListDefaultsToActive(t *testing.T) {
	f := ProfileFilter{}
	assert.Equal(t, []query.Predicate{{Column: "status", Op: query.Eq, Value: models.ProfileActive}}, f.Spec().Predicates)

	f = ProfileFilter{Status: "inactive", Role: "manager"}
	assert.Equal(t, []query.Predicate{
		{Column: "role", Op: query.Eq, Value: "manager"},
		{Column: "status", Op: query.Eq, Value: "inactive"},
	}, f.Spec().Predicates)
}

func TestDeactivateProfile(t *testing.T) {
	db, mock := newMockDB(t)
	profiles := NewProfileStore(db)

	mock.ExpectExec(`UPDATE "profiles" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("inactive", sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE "id" = \$1`).
		WillReturnRows(profileRows().AddRow("u1", "Ana Lima", "ana@example.com", "employee", "inactive", nil))

	got, err := profiles.Deactivate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileInactive, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateRejectsUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)
	profiles := NewProfileStore(db)
	role := models.UserRole("owner")

	_, err := profiles.Update(context.Background(), "u1", ProfilePatch{Role: &role})
	assert.ErrorIs(t, err, ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOwnRejectsBlankName(t *testing.T) {
	db, _ := newMockDB(t)
	profiles := NewProfileStore(db)

	_, err := profiles.UpdateOwn(context.Background(), "u1", OwnProfilePatch{FullName: ptr("")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name", ve.Field)
}

func TestProfileGetOutsideScope(t *testing.T) {
	db, mock := newMockDB(t)
	profiles := NewProfileStore(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE "id" = \$1 AND "id" = \$2`).
		WillReturnRows(profileRows())

	_, err := profiles.Get(context.Background(), "other", query.Spec{}.Eq("id", "me"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpdateRejectsBlankName(t *testing.T) {
	db, mock := newMockDB(t)
	profiles := NewProfileStore(db)

	_, err := profiles.Update(context.Background(), "u1", ProfilePatch{FullName: ptr("")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name is required", ve.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}
