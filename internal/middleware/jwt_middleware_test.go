package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/allinone/manager/internal/middleware"
	"github.com/allinone/manager/internal/model"
	"github.com/allinone/manager/internal/pkg/jwt"
)

var testSecret = []byte("test-secret")

func newAuthedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/protected")
	group.Use(middleware.JWTAuth(testSecret))
	if len(roles) > 0 {
		group.Use(middleware.RequireRole(roles...))
	}
	group.GET("", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMissingHeader(t *testing.T) {
	resp := doGet(newAuthedRouter(), "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.JSONEq(t, `{"error":"missing authorization"}`, resp.Body.String())
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := newAuthedRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.JSONEq(t, `{"error":"invalid authorization"}`, resp.Body.String())
}

func TestJWTAuthInvalidToken(t *testing.T) {
	resp := doGet(newAuthedRouter(), "garbage")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, resp.Body.String())
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token, err := jwt.GenerateToken(1, model.RoleUser, "", "", testSecret, -time.Minute)
	require.NoError(t, err)

	resp := doGet(newAuthedRouter(), token)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.JSONEq(t, `{"error":"token expired"}`, resp.Body.String())
}

func TestJWTAuthValidToken(t *testing.T) {
	token, err := jwt.GenerateToken(7, model.RoleManager, "", "", testSecret, time.Hour)
	require.NoError(t, err)

	resp := doGet(newAuthedRouter(), token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"user_id":7,"role":"manager"}`, resp.Body.String())
}

func TestRequireRoleForbidden(t *testing.T) {
	token, err := jwt.GenerateToken(7, model.RoleUser, "", "", testSecret, time.Hour)
	require.NoError(t, err)

	resp := doGet(newAuthedRouter(model.RoleAdmin), token)
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.JSONEq(t, `{"error":"forbidden"}`, resp.Body.String())
}

func TestRequireRoleAllowed(t *testing.T) {
	token, err := jwt.GenerateToken(7, model.RoleAdmin, "", "", testSecret, time.Hour)
	require.NoError(t, err)

	resp := doGet(newAuthedRouter(model.RoleAdmin), token)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// RequireRole wired without JWTAuth must refuse the request, not panic.
	router.GET("/broken", middleware.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/broken", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
