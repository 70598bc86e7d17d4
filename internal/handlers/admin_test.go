package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"culture-passport/internal/models"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	f.credentials.On("CreateWithProfile", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Email == "new@x.com" && p.Role == models.RoleEmployee && p.Status == models.ProfileActive
	}), "s3cret").Run(func(args mock.Arguments) {
		args.Get(1).(*models.Profile).ID = "new-1"
	}).Return(nil)
	f.audit.On("Record", mock.Anything, admin.UserID, "profile", "new-1", "create", "new@x.com").Return()

	w := serve(t, f.h.CreateUser, call{method: http.MethodPost, as: &admin, body: gin.H{
		"email": "new@x.com", "password": "s3cret", "full_name": "New Hire", "role": "employee",
	}})

	require.Equal(t, http.StatusCreated, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "new-1", got["id"])
	assert.NotContains(t, got, "password")
}

func TestCreateUserDuplicate(t *testing.T) {
	f := newFixture(t)
	f.credentials.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(store.ErrDuplicate)

	w := serve(t, f.h.CreateUser, call{method: http.MethodPost, as: &admin, body: gin.H{
		"email": "dup@x.com", "password": "pw", "full_name": "Dup", "role": "employee",
	}})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"already exists"}`, w.Body.String())
}

func TestOverviewStatsUsesBothScopes(t *testing.T) {
	f := newFixture(t)
	profiles := query.Spec{}.Eq("department_id", "d1")
	owned := query.Spec{}.Eq("user_id", "x")
	f.scoper.On("Scope", mock.Anything, manager, query.Profiles).Return(profiles, nil)
	f.scoper.On("Scope", mock.Anything, manager, query.UserMissions).Return(owned, nil)
	f.admin.On("Overview", mock.Anything, profiles, owned).
		Return(&store.OverviewStats{ActiveEmployees: 4, AverageExamScore: 72.5}, nil)

	w := serve(t, f.h.OverviewStats, call{as: &manager})

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.EqualValues(t, 4, got["active_employees"])
	assert.EqualValues(t, 72.5, got["average_exam_score"])
}

func exportFixture(t *testing.T, userIDs []string) *fixture {
	f := newFixture(t)
	score := 90
	reviewed := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	f.scoper.On("Scope", mock.Anything, admin, query.Profiles).Return(query.Spec{}, nil)
	f.scoper.On("Scope", mock.Anything, admin, query.UserMissions).Return(query.Spec{}, nil)
	f.admin.On("Export", mock.Anything, query.Spec{}, query.Spec{}, userIDs).Return(&store.ExportData{
		Profiles: []models.Profile{{Base: models.Base{ID: "u1"}, FullName: "Ana, B.", Email: "ana@x.com"}},
		UserMissions: []models.UserMission{{
			MissionID: "m1", UserID: "u1", Status: models.StatusApproved,
			FeedbackScore: &score, ReviewedAt: &reviewed,
		}},
	}, nil)
	return f
}

func TestExportCSV(t *testing.T) {
	f := exportFixture(t, []string{"u1"})

	w := serve(t, f.h.ExportData, call{target: "/admin/export?format=csv&user_ids=u1", as: &admin})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"u1", "Ana, B.", "ana@x.com", "m1", "approved", "90", "", "2025-02-03T10:00:00Z"}, rows[1])
}

func TestExportJSONByDefault(t *testing.T) {
	f := exportFixture(t, nil)

	w := serve(t, f.h.ExportData, call{target: "/admin/export", as: &admin})

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string][]any](t, w)
	assert.Len(t, got["profiles"], 1)
	assert.Len(t, got["user_missions"], 1)
}

func TestExportUnknownFormat(t *testing.T) {
	f := exportFixture(t, nil)

	w := serve(t, f.h.ExportData, call{target: "/admin/export?format=xml", as: &admin})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPendingMissions(t *testing.T) {
	f := newFixture(t)
	f.scoper.On("Scope", mock.Anything, manager, query.UserMissions).Return(ownScope("mgr-1"), nil)
	f.userMissions.On("List", mock.Anything, ownScope("mgr-1"), store.UserMissionFilter{Status: "submitted"}).
		Return([]models.UserMission{}, nil)

	w := serve(t, f.h.PendingMissions, call{as: &manager})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTeamMembersAndScores(t *testing.T) {
	f := newFixture(t)
	dept := query.Spec{}.Eq("department_id", "d1")
	f.scoper.On("Scope", mock.Anything, manager, query.Profiles).Return(dept, nil)
	f.scoper.On("Scope", mock.Anything, manager, query.ExamScores).Return(dept, nil)
	f.profiles.On("List", mock.Anything, dept, store.ProfileFilter{}).Return([]models.Profile{{FullName: "A"}}, nil)
	f.exams.On("Scores", mock.Anything, dept, "emp-1").Return([]models.ExamScore{}, nil)

	w := serve(t, f.h.TeamMembers, call{as: &manager})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Profile](t, w), 1)

	w = serve(t, f.h.MemberExamScores, call{as: &manager, params: gin.Params{{Key: "memberId", Value: "emp-1"}}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAuditLogs(t *testing.T) {
	f := newFixture(t)
	f.audit.On("List", mock.Anything, 20).Return([]models.AuditLog{{Entity: "mission", Action: "delete"}}, nil)

	w := serve(t, f.h.ListAuditLogs, call{target: "/admin/audit-logs?limit=20", as: &admin})

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.AuditLog](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "delete", got[0].Action)
}

func TestListAuditLogsWithoutAuditTrail(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := New(Deps{Log: log})

	w := serve(t, h.ListAuditLogs, call{target: "/admin/audit-logs", as: &admin})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
