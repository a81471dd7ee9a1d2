package handler

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
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/sweetshop/backend/internal/application/identity"
	"github.com/sweetshop/backend/internal/domain/identity"
	"github.com/sweetshop/backend/internal/domain/shared"
	"github.com/sweetshop/backend/internal/infrastructure/auth"
	"github.com/sweetshop/backend/internal/infrastructure/config"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
	"github.com/sweetshop/backend/internal/interfaces/http/middleware"
)

// fakeUserRepo stores users keyed by lowercase email
type fakeUserRepo struct {
	byEmail map[string]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	if u, ok := r.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	r.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

type authTestEnv struct {
	router     *gin.Engine
	users      *fakeUserRepo
	jwtService *auth.JWTService
	blacklist  *auth.InMemoryTokenBlacklist
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()

	users := newFakeUserRepo()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		TokenExpiration: time.Hour,
		Issuer:          "sweetshop-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	service := appidentity.NewAuthService(users, jwtService, blacklist, zap.NewNop())

	authn := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})
	handler := NewAuthHandler(service, authn)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return &authTestEnv{router: router, users: users, jwtService: jwtService, blacklist: blacklist}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerRegister(t *testing.T) {
	env := setupAuthTest(t)

	w := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "sugar-rush-9",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "USER", data["role"])
	// registration never returns a token
	assert.NotContains(t, data, "token")
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	env := setupAuthTest(t)

	body := map[string]string{"email": "bob@example.com", "password": "sugar-rush-9"}
	postJSON(t, env.router, "/api/v1/auth/register", body, nil)
	w := postJSON(t, env.router, "/api/v1/auth/register", body, nil)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

func TestAuthHandlerRegisterInvalidBody(t *testing.T) {
	env := setupAuthTest(t)

	w := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "sugar-rush-9",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	env := setupAuthTest(t)

	postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "carol@example.com",
		"password": "sugar-rush-9",
	}, nil)

	w := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "carol@example.com",
		"password": "sugar-rush-9",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := env.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	env := setupAuthTest(t)

	postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "dave@example.com",
		"password": "sugar-rush-9",
	}, nil)

	w := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "dave@example.com",
		"password": "wrong-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthHandlerLoginUnknownEmail(t *testing.T) {
	env := setupAuthTest(t)

	w := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "sugar-rush-9",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	// same code as a wrong password, so callers can't probe for accounts
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	env := setupAuthTest(t)

	postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "erin@example.com",
		"password": "sugar-rush-9",
	}, nil)
	loginResp := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "erin@example.com",
		"password": "sugar-rush-9",
	}, nil)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &resp))
	token := resp.Data.(map[string]any)["token"].(string)

	headers := map[string]string{"Authorization": "Bearer " + token}

	w := postJSON(t, env.router, "/api/v1/auth/logout", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	// the revoked token is rejected on the next authenticated call
	w = postJSON(t, env.router, "/api/v1/auth/logout", nil, headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	require.NotNil(t, errResp.Error)
	assert.Equal(t, dto.ErrCodeTokenRevoked, errResp.Error.Code)
}

func TestAuthHandlerLogoutWithoutToken(t *testing.T) {
	env := setupAuthTest(t)

	w := postJSON(t, env.router, "/api/v1/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
