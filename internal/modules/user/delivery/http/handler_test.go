package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/middleware"
	"anoa.com/storerating/internal/modules/user/repository"
	userService "anoa.com/storerating/internal/modules/user/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrNotFound
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, validator.Register(entity.RoleNames()...))
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "handler-test-secret", JWTTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	authSvc := userService.NewAuthService(&stubUserRepo{users: map[uuid.UUID]*entity.User{}}, cfg)
	h := NewAuthHandler(authSvc)
	m := middleware.NewAuthMiddleware(authSvc, nil, nil)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/verify", m.RequireAuth(), h.Verify)
	r.POST("/auth/logout", m.RequireAuth(), h.Logout)
	return r
}

type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Data    struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
		User      struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"user"`
	} `json:"data"`
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

var newAccount = gin.H{
	"name":     "Alexandra Montgomery Jr",
	"email":    "alex@mail.com",
	"password": "Secret#123",
	"address":  "1 Main St",
}

func TestRegisterLoginVerify(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodPost, "/auth/register", "", newAccount)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.Equal(t, "normal_user", env.Data.User.Role)
	assert.Equal(t, "Bearer", env.Data.TokenType)
	assert.EqualValues(t, 3600, env.Data.ExpiresIn)
	assert.Empty(t, env.Data.User.Password)

	code, env = call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "alex@mail.com", "password": "Secret#123"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", env.Message)
	token := env.Data.Token
	require.NotEmpty(t, token)

	code, env = call(t, r, http.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Token is valid", env.Message)
	assert.Equal(t, "alex@mail.com", env.Data.User.Email)

	code, env = call(t, r, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Logged out successfully", env.Message)
}

func TestRegisterRejectsDuplicateAndInvalid(t *testing.T) {
	r := setupRouter(t)

	code, _ := call(t, r, http.MethodPost, "/auth/register", "", newAccount)
	require.Equal(t, http.StatusCreated, code)

	code, env := call(t, r, http.MethodPost, "/auth/register", "", newAccount)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with this email already exists", env.Message)

	code, env = call(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Too Short", "email": "alex@mail", "password": "secret", "address": "1 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Len(t, env.Errors, 3)
}

func TestRegisterRejectsNameShortenedByMarkup(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "<i>Abcdefghijklmnop</i>", "email": "alex@mail.com", "password": "Secret#123", "address": "1 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, []string{"Name must be between 20 and 60 characters"}, env.Errors)

	code, _ = call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "alex@mail.com", "password": "Secret#123"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)
	call(t, r, http.MethodPost, "/auth/register", "", newAccount)

	code, env := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "alex@mail.com", "password": "Wrong#123"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestVerifyWithoutToken(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodGet, "/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Access token required", env.Message)
}
