package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"culture-passport/internal/auth"
	"culture-passport/internal/middleware"
	"culture-passport/internal/mocks"
	"culture-passport/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	admin    = auth.Principal{UserID: "admin-1", Email: "admin@x.com", Role: models.RoleAdmin}
	manager  = auth.Principal{UserID: "mgr-1", Email: "mgr@x.com", Role: models.RoleManager}
	employee = auth.Principal{UserID: "emp-1", Email: "emp@x.com", Role: models.RoleEmployee}
)

type fixture struct {
	h             *Handler
	credentials   *mocks.CredentialService
	profiles      *mocks.ProfileService
	scoper        *mocks.Scoper
	missions      *mocks.MissionService
	userMissions  *mocks.UserMissionService
	departments   *mocks.Resource[models.Department]
	templates     *mocks.Resource[models.ExamTemplate]
	exams         *mocks.ExamService
	announcements *mocks.AnnouncementService
	roadmap       *mocks.RoadmapService
	admin         *mocks.AdminService
	audit         *mocks.AuditService
	storage       *mocks.ObjectStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()
	f := &fixture{
		credentials:   new(mocks.CredentialService),
		profiles:      new(mocks.ProfileService),
		scoper:        new(mocks.Scoper),
		missions:      new(mocks.MissionService),
		userMissions:  new(mocks.UserMissionService),
		departments:   new(mocks.Resource[models.Department]),
		templates:     new(mocks.Resource[models.ExamTemplate]),
		exams:         new(mocks.ExamService),
		announcements: new(mocks.AnnouncementService),
		roadmap:       new(mocks.RoadmapService),
		admin:         new(mocks.AdminService),
		audit:         new(mocks.AuditService),
		storage:       new(mocks.ObjectStorage),
	}
	f.h = New(Deps{
		Credentials:   f.credentials,
		Profiles:      f.profiles,
		Scoper:        f.scoper,
		Missions:      f.missions,
		UserMissions:  f.userMissions,
		Departments:   f.departments,
		ExamTemplates: f.templates,
		Exams:         f.exams,
		Announcements: f.announcements,
		Roadmap:       f.roadmap,
		Admin:         f.admin,
		Audit:         f.audit,
		Storage:       f.storage,
		Log:           log,
	})
	t.Cleanup(func() {
		f.credentials.AssertExpectations(t)
		f.profiles.AssertExpectations(t)
		f.scoper.AssertExpectations(t)
		f.missions.AssertExpectations(t)
		f.userMissions.AssertExpectations(t)
		f.departments.AssertExpectations(t)
		f.templates.AssertExpectations(t)
		f.exams.AssertExpectations(t)
		f.announcements.AssertExpectations(t)
		f.roadmap.AssertExpectations(t)
		f.admin.AssertExpectations(t)
		f.audit.AssertExpectations(t)
		f.storage.AssertExpectations(t)
	})
	return f
}

type call struct {
	method string
	target string
	body   any
	as     *auth.Principal
	params gin.Params
}

// serve runs one handler on a test context the way the router would.
func serve(t *testing.T, handler gin.HandlerFunc, cl call) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var body bytes.Buffer
	if cl.body != nil {
		switch b := cl.body.(type) {
		case string:
			body.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&body).Encode(b))
		}
	}
	method := cl.method
	if method == "" {
		method = http.MethodGet
	}
	target := cl.target
	if target == "" {
		target = "/"
	}
	c.Request = httptest.NewRequest(method, target, &body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = cl.params
	if cl.as != nil {
		middleware.SetPrincipal(c, *cl.as)
	}

	handler(c)
	return w
}

func id(v string) gin.Params { return gin.Params{{Key: "id", Value: v}} }

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
