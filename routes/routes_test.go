package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/analytics"
	"campusevents/controllers"
	"campusevents/database"
	"campusevents/models"
	"campusevents/services"
	"campusevents/storage"
	"campusevents/utils"
)

type staticSource struct{ snapshot analytics.Collections }

func (s staticSource) Load(_ context.Context) (*analytics.Collections, error) {
	c := s.snapshot
	return &c, nil
}

type memoryAdmins struct{ admins []*models.Admin }

func (m *memoryAdmins) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memoryAdmins) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memoryAdmins) TouchLastLogin(context.Context, primitive.ObjectID, time.Time) error {
	return nil
}

type memoryExports struct{ records []models.ExportRecord }

func (m *memoryExports) Insert(_ context.Context, record *models.ExportRecord) error {
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryExports) List(_ context.Context, limit int) ([]models.ExportRecord, error) {
	if len(m.records) < limit {
		limit = len(m.records)
	}
	return append([]models.ExportRecord(nil), m.records[:limit]...), nil
}

func (m *memoryExports) FindByExportID(_ context.Context, id string) (*models.ExportRecord, error) {
	for i := range m.records {
		if m.records[i].ExportID == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

type testServer struct {
	router  *gin.Engine
	analyst string
	super   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("routes-test-secret", time.Hour)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	fee := 50.0
	count := 4
	snapshot := analytics.Collections{
		Users: []models.User{{ID: "u1", Name: "Asha", CreatedAt: "2024-03-01T09:00:00Z"}},
		Events: []models.Event{{
			EventID:           "e1",
			Title:             "Hackathon",
			OrganizingDept:    "Computer Science",
			CreatedAt:         "2024-03-10T10:00:00Z",
			RegistrationFee:   &fee,
			RegistrationCount: &count,
		}},
		Registrations: []models.Registration{
			{RegistrationID: "r1", EventID: "e1", RegistrationType: models.RegistrationIndividual, CreatedAt: "2024-03-11T10:00:00Z"},
		},
	}
	now := func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }

	analyst := &models.Admin{
		ID:          primitive.NewObjectID(),
		Email:       "analyst@campus.edu",
		Role:        models.RoleAnalyst,
		Permissions: []string{models.PermissionAnalyticsRead, models.PermissionExportsWrite},
		IsActive:    true,
	}
	super := &models.Admin{ID: primitive.NewObjectID(), Email: "root@campus.edu", Role: models.RoleSuperAdmin, IsActive: true}
	admins := &memoryAdmins{admins: []*models.Admin{analyst, super}}

	store, err := storage.NewLocalClient(&models.StorageProvider{
		Name:     "Local Exports",
		Type:     "local",
		Settings: map[string]interface{}{"base_path": t.TempDir()},
	})
	require.NoError(t, err)

	analyticsService := services.NewAnalyticsService(staticSource{snapshot}, services.NewResultCache(time.Minute, 8), logger, analytics.Params{DateRange: analytics.Range30Days, TopN: 10})
	analyticsService.SetClock(now)
	exportService := services.NewExportService(analyticsService, &memoryExports{}, store, time.Minute, logger)
	exportService.SetClock(now)
	authService := services.NewAuthService(admins, logger)

	router := gin.New()
	SetupRoutes(router, Handlers{
		Auth:      controllers.NewAuthController(authService, logger),
		Analytics: controllers.NewAnalyticsController(analyticsService, logger),
		Exports:   controllers.NewExportController(exportService, logger),
		Admins:    authService,
	})

	tokenFor := func(a *models.Admin) string {
		pair, err := utils.GenerateAdminToken(a)
		require.NoError(t, err)
		return "Bearer " + pair.AccessToken
	}

	return &testServer{router: router, analyst: tokenFor(analyst), super: tokenFor(super)}
}

func (s *testServer) do(method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestDashboardEndpoints(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		token      string
		wantStatus int
	}{
		{"no token", "/admin/api/dashboard", "", http.StatusUnauthorized},
		{"dashboard", "/admin/api/dashboard?range=30d&top_n=5", s.analyst, http.StatusOK},
		{"invalid range", "/admin/api/dashboard?range=14d", s.analyst, http.StatusUnprocessableEntity},
		{"invalid top n", "/admin/api/dashboard?top_n=7", s.analyst, http.StatusUnprocessableEntity},
		{"non-numeric top n", "/admin/api/dashboard?top_n=many", s.analyst, http.StatusUnprocessableEntity},
		{"growth", "/admin/api/analytics/growth?range=7d", s.analyst, http.StatusOK},
		{"breakdown", "/admin/api/analytics/departments", s.analyst, http.StatusOK},
		{"unknown breakdown", "/admin/api/analytics/revenue", s.analyst, http.StatusNotFound},
		{"me", "/admin/api/me", s.analyst, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.target, tt.token, nil)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	w := s.do(http.MethodGet, "/admin/api/dashboard?range=all", s.analyst, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard analytics.Dashboard
	decodeData(t, w, &dashboard)
	assert.Equal(t, analytics.RangeAll, dashboard.Params.DateRange)
	assert.Nil(t, dashboard.Growth)
	assert.Equal(t, 200.0, dashboard.KPIs.EstimatedRevenue)
}

func TestCacheClearRequiresSuperAdmin(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/admin/api/cache/clear", s.analyst, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/admin/api/cache/clear", s.super, nil).Code)
}

func TestExportFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/admin/api/analytics/export", s.analyst, map[string]string{"type": "timeline"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record models.ExportRecord
	decodeData(t, w, &record)
	assert.Equal(t, "timeline", record.Type)
	assert.Equal(t, "/admin/api/exports/"+record.ExportID+"/download", record.DownloadURL)

	w = s.do(http.MethodGet, "/admin/api/exports", s.analyst, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.ExportRecord
	decodeData(t, w, &listed)
	require.Len(t, listed, 1)

	var envelope struct {
		Meta models.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.Meta{Count: 1, Limit: 50}, envelope.Meta)

	w = s.do(http.MethodGet, "/admin/api/exports?limit=5", s.analyst, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 5, envelope.Meta.Limit)

	w = s.do(http.MethodGet, record.DownloadURL, s.analyst, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, "Month,Registrations,Events\n2024-03,1,1\n", w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/admin/api/exports/missing", s.analyst, nil).Code)

	bad := s.do(http.MethodPost, "/admin/api/analytics/export", s.analyst, map[string]string{"type": "timeline", "format": "excel"})
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/admin/login", "", map[string]string{"email": "analyst@campus.edu", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/admin/login", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
