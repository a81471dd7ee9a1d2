package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/backend/internal/infrastructure/auth"
	"github.com/sweetshop/backend/internal/infrastructure/config"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "middleware-test-secret-key-12345",
		TokenExpiration: time.Hour,
		Issuer:          "sweetshop-test",
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role string) (string, *auth.Claims) {
	t.Helper()

	issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "test@example.com",
		Role:   role,
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(issued.Token)
	require.NoError(t, err)

	return issued.Token, claims
}

func setupProtectedRoute(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.GET("/protected", JWTAuthMiddlewareWithConfig(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
		})
	})
	return router
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	router := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

	token, claims := issueToken(t, jwtService, "USER")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, claims.UserID, body["user_id"])
	assert.Equal(t, "USER", body["role"])
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupProtectedRoute(JWTMiddlewareConfig{JWTService: newTestJWTService()})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareMalformedHeader(t *testing.T) {
	jwtService := newTestJWTService()
	router := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

	token, _ := issueToken(t, jwtService, "USER")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", token) // missing Bearer prefix
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareGarbageToken(t *testing.T) {
	router := setupProtectedRoute(JWTMiddlewareConfig{JWTService: newTestJWTService()})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeTokenInvalid, resp.Error.Code)
}

func TestJWTAuthMiddlewareBlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := setupProtectedRoute(JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})

	token, claims := issueToken(t, jwtService, "USER")
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeTokenRevoked, resp.Error.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	router := gin.New()
	router.GET("/admin",
		JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService}),
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	token, _ := issueToken(t, jwtService, "ADMIN")

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsUser(t *testing.T) {
	jwtService := newTestJWTService()
	router := gin.New()
	router.GET("/admin",
		JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService}),
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	token, _ := issueToken(t, jwtService, "USER")

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
}

func TestRequireAdminRejectsUnauthenticated(t *testing.T) {
	router := gin.New()
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
