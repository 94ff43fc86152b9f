package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/allinone/manager/internal/handler"
	"github.com/allinone/manager/internal/pkg/jwt"
	"github.com/allinone/manager/internal/repo"
	"github.com/allinone/manager/internal/service"
)

var testSecret = []byte("test-secret")

var userColumns = []string{"id", "email", "password_hash", "name", "role", "active", "created_at"}

func setupRouter(t *testing.T, openNotifications bool) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repo.NewUserRepo(db)
	appRepo := repo.NewAppRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)

	router := handler.NewRouter(handler.RouterDeps{
		Health:            handler.NewHealthHandler(time.Now()),
		Auth:              handler.NewAuthHandler(service.NewAuthService(userRepo, testSecret, 8*time.Hour)),
		Users:             handler.NewUserHandler(service.NewUserService(userRepo)),
		Apps:              handler.NewAppHandler(service.NewAppService(appRepo)),
		Notifications:     handler.NewNotificationHandler(service.NewNotificationService(notificationRepo)),
		JWTSecret:         testSecret,
		OpenNotifications: openNotifications,
	})
	return router, mock
}

func tokenFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, role, "Tester", "tester@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	return decoded
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, false)
	resp := doJSON(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, "ok", body["status"])
	require.Contains(t, body, "uptime")
}

func TestUnmatchedRoute(t *testing.T) {
	router, _ := setupRouter(t, false)
	resp := doJSON(router, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.JSONEq(t, `{"error":"Not Found"}`, resp.Body.String())
}
