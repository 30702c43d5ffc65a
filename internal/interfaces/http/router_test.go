package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/civictrack/civictrack/internal/infrastructure/auth"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/migration"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
	"github.com/civictrack/civictrack/internal/infrastructure/seeds"
	sharedConfig "github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const staffSeed = `
users:
  - name: City Administrator
    email: admin@civictrack.local
    password: admin-pass
    role: admin
  - name: Roads Officer
    email: roads@civictrack.local
    password: officer-pass
    role: department_officer
`

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (a apiClient) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (a apiClient) login(email, password string) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(a.t, http.StatusOK, status, body)
	return body["token"].(string)
}

func newTestContainer(t *testing.T) apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := logger.NewLogger()
	require.NoError(t, migration.NewGormAutoMigrateStrategy(log).Migrate(db))

	seedFile, err := seeds.Parse([]byte(staffSeed))
	require.NoError(t, err)
	seeder := seeds.NewSeeder(repository.NewUserRepository(db), auth.NewBcryptPasswordHasher(4), log)
	_, err = seeder.Apply(context.Background(), seedFile)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{
			Mode:           "test",
			BaseURL:        "http://localhost:5000",
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxBodyMB:      1,
		},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT: sharedConfig.JWTConfig{
				Secret:           "test-secret",
				Issuer:           "civictrack-test",
				AccessExpMinutes: 60,
			},
		},
		Complaint: sharedConfig.ComplaintConfig{
			SequenceBackend: "database",
			MaxImageBytes:   1 << 16,
		},
	}

	container, err := NewContainer(db, cfg, log)
	require.NoError(t, err)
	t.Cleanup(container.Shutdown)
	container.SetupRoutes()

	return apiClient{t: t, engine: container.Engine()}
}

func TestRouter_ComplaintLifecycle(t *testing.T) {
	api := newTestContainer(t)

	status, body := api.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Asha Rao",
		"email":    "asha@example.com",
		"password": "secret1",
		"phone":    "+91 98450 00000",
	})
	require.Equal(t, http.StatusCreated, status, body)
	citizenToken := body["token"].(string)
	assert.Equal(t, "citizen", body["user"].(map[string]interface{})["role"])

	status, body = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ravi Kumar",
		"email":    "ravi@example.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusCreated, status, body)
	otherToken := body["token"].(string)

	adminToken := api.login("admin@civictrack.local", "admin-pass")
	officerToken := api.login("roads@civictrack.local", "officer-pass")

	// create
	status, body = api.do(http.MethodPost, "/api/complaints", citizenToken, map[string]interface{}{
		"issueType":   "pothole",
		"description": "Deep pothole in front of the school gate",
		"address":     "12 MG Road",
		"latitude":    18.52,
		"longitude":   73.85,
	})
	require.Equal(t, http.StatusCreated, status, body)
	created := body["complaint"].(map[string]interface{})
	complaintID := created["id"].(string)
	assert.True(t, strings.HasPrefix(created["complaintId"].(string), "CT"))
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "medium", created["priority"])
	assert.Nil(t, created["assignedOfficer"])

	// staff cannot file complaints
	status, _ = api.do(http.MethodPost, "/api/complaints", adminToken, map[string]interface{}{
		"issueType": "garbage", "description": "Overflowing bins near market",
		"address": "Market", "latitude": 1.0, "longitude": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, status)

	// list: the other citizen sees nothing, the owner and staff see one
	status, body = api.do(http.MethodGet, "/api/complaints", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["pages"])

	status, body = api.do(http.MethodGet, "/api/complaints?status=pending", officerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(1), body["pages"])

	status, _ = api.do(http.MethodGet, "/api/complaints?status=closed", officerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// get
	status, _ = api.do(http.MethodGet, "/api/complaints/"+complaintID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(http.MethodGet, "/api/complaints/"+complaintID, citizenToken, nil)
	require.Equal(t, http.StatusOK, status)
	citizen := body["complaint"].(map[string]interface{})["citizen"].(map[string]interface{})
	assert.Equal(t, "Asha Rao", citizen["name"])

	// stats are staff only and routed before /:id
	status, _ = api.do(http.MethodGet, "/api/complaints/stats/overview", citizenToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// update status
	status, _ = api.do(http.MethodPut, "/api/complaints/"+complaintID+"/status", citizenToken, map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(http.MethodPut, "/api/complaints/"+complaintID+"/status", officerToken, map[string]string{
		"status":             "resolved",
		"assignedDepartment": "roads",
		"resolutionNotes":    "Filled and levelled",
	})
	require.Equal(t, http.StatusOK, status, body)
	updated := body["complaint"].(map[string]interface{})
	assert.Equal(t, "resolved", updated["status"])
	assert.NotNil(t, updated["completedAt"])

	// rate
	status, _ = api.do(http.MethodPut, "/api/complaints/"+complaintID+"/rate", otherToken, map[string]interface{}{"rating": 5})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPut, "/api/complaints/"+complaintID+"/rate", citizenToken, map[string]interface{}{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do(http.MethodPut, "/api/complaints/"+complaintID+"/rate", citizenToken, map[string]interface{}{
		"rating":   5,
		"feedback": "Fixed within a day",
	})
	require.Equal(t, http.StatusOK, status, body)

	// stats
	status, body = api.do(http.MethodGet, "/api/complaints/stats/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalComplaints"])
	assert.Equal(t, float64(1), stats["resolved"])

	// delete
	status, _ = api.do(http.MethodDelete, "/api/complaints/"+complaintID, officerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(http.MethodDelete, "/api/complaints/"+complaintID, citizenToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Complaint deleted", body["message"])

	status, _ = api.do(http.MethodGet, "/api/complaints/"+complaintID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_RequiresToken(t *testing.T) {
	api := newTestContainer(t)

	status, body := api.do(http.MethodGet, "/api/complaints", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized, no token", body["message"])

	status, body = api.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized, token failed", body["message"])
}

func TestRouter_ServesAPIDocs(t *testing.T) {
	api := newTestContainer(t)

	status, body := api.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, status)
	info := body["info"].(map[string]interface{})
	assert.Equal(t, "CivicTrack API", info["title"])
	assert.Contains(t, body["paths"], "/complaints/{id}/status")
}

func TestRouter_UnknownRoutesUseErrorEnvelope(t *testing.T) {
	api := newTestContainer(t)

	status, body := api.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Resource not found", body["message"])

	status, body = api.do(http.MethodPatch, "/api/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Method not allowed", body["message"])
}
