package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/internal/app/storefront/repository/mocks"
	"honeymart/internal/app/storefront/service"
	"honeymart/internal/app/storefront/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хелперы для создания тестового окружения

func newTestAuthHandler() (*AuthHandler, *mocks.MockUserRepository, *mocks.MockCartRepository, *mocks.MockTokenRepository, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	cartRepo := new(mocks.MockCartRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)

	authService := service.NewAuthService(userRepo, cartRepo, tokenRepo, jwtManager)
	handler := NewAuthHandler(authService)

	return handler, userRepo, cartRepo, tokenRepo, jwtManager
}

func newTestUser() *entity.User {
	hash, _ := util.HashPassword("password123")
	return &entity.User{
		ID:           uuid.New(),
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// setupTestRouter создаёт тестовый Gin router с одним хендлером
func setupTestRouter(method, path string, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	switch method {
	case http.MethodGet:
		router.GET(path, handlers...)
	case http.MethodPost:
		router.POST(path, handlers...)
	case http.MethodPut:
		router.PUT(path, handlers...)
	case http.MethodDelete:
		router.DELETE(path, handlers...)
	case http.MethodPatch:
		router.PATCH(path, handlers...)
	}
	return router
}

// withUser подставляет идентификацию пользователя, как это делает AuthMiddleware
func withUser(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// ==================== Register Handler Tests ====================

func TestAuthHandler_Register_Success(t *testing.T) {
	// Arrange
	handler, userRepo, cartRepo, tokenRepo, _ := newTestAuthHandler()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	cartRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&entity.Cart{ID: uuid.New()}, nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	reqBody := entity.RegisterRequest{
		Username:        "newuser",
		Email:           "newuser@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.AuthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "newuser", response.User.Username)
	assert.Equal(t, entity.RoleUser, response.User.Role)
	assert.NotEmpty(t, response.Tokens.AccessToken)
	assert.NotEmpty(t, response.Tokens.RefreshToken)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestAuthHandler()

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestAuthHandler()

	testCases := []struct {
		name    string
		request entity.RegisterRequest
	}{
		{
			name:    "Empty username",
			request: entity.RegisterRequest{Username: "", Email: "test@test.com", Password: "password123", PasswordConfirm: "password123"},
		},
		{
			name:    "Short username",
			request: entity.RegisterRequest{Username: "ab", Email: "test@test.com", Password: "password123", PasswordConfirm: "password123"},
		},
		{
			name:    "Invalid email",
			request: entity.RegisterRequest{Username: "testuser", Email: "not-an-email", Password: "password123", PasswordConfirm: "password123"},
		},
		{
			name:    "Short password",
			request: entity.RegisterRequest{Username: "testuser", Email: "test@test.com", Password: "short", PasswordConfirm: "short"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.request)

			router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestAuthHandler()

	reqBody := entity.RegisterRequest{
		Username:        "newuser",
		Email:           "newuser@example.com",
		Password:        "password123",
		PasswordConfirm: "password456",
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Passwords do not match", response["message"])
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	// Arrange
	handler, userRepo, _, _, _ := newTestAuthHandler()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicateUsername)

	reqBody := entity.RegisterRequest{
		Username:        "taken",
		Email:           "newuser@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "User with this username already exists", response["message"])
}

// ==================== Login Handler Tests ====================

func TestAuthHandler_Login_Success(t *testing.T) {
	// Arrange
	handler, userRepo, _, tokenRepo, _ := newTestAuthHandler()
	user := newTestUser()

	userRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	body, _ := json.Marshal(entity.LoginRequest{Username: "testuser", Password: "password123"})

	router := setupTestRouter(http.MethodPost, "/auth/login", handler.Login)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, user.ID, response.User.ID)
	assert.NotEmpty(t, response.Tokens.AccessToken)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	// Arrange
	handler, userRepo, _, _, _ := newTestAuthHandler()
	user := newTestUser()

	userRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil)

	body, _ := json.Marshal(entity.LoginRequest{Username: "testuser", Password: "wrong-password"})

	router := setupTestRouter(http.MethodPost, "/auth/login", handler.Login)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid username or password", response["message"])
}

// ==================== RefreshToken Handler Tests ====================

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	// Arrange
	handler, userRepo, _, tokenRepo, _ := newTestAuthHandler()
	user := newTestUser()

	tokenRepo.On("GetRefreshToken", mock.Anything, "valid-refresh").Return(user.ID, nil)
	tokenRepo.On("DeleteRefreshToken", mock.Anything, "valid-refresh").Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	body, _ := json.Marshal(entity.RefreshRequest{RefreshToken: "valid-refresh"})

	router := setupTestRouter(http.MethodPost, "/auth/refresh", handler.RefreshToken)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var tokens entity.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "valid-refresh", tokens.RefreshToken)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	// Arrange
	handler, _, _, tokenRepo, _ := newTestAuthHandler()

	tokenRepo.On("GetRefreshToken", mock.Anything, "bad-token").Return(uuid.Nil, repository.ErrTokenNotFound)

	body, _ := json.Marshal(entity.RefreshRequest{RefreshToken: "bad-token"})

	router := setupTestRouter(http.MethodPost, "/auth/refresh", handler.RefreshToken)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==================== ValidateToken Handler Tests ====================

func TestAuthHandler_ValidateToken_Success(t *testing.T) {
	// Arrange
	handler, _, _, tokenRepo, jwtManager := newTestAuthHandler()
	user := newTestUser()

	accessToken, err := jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role())
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, accessToken).Return(false, nil)

	router := setupTestRouter(http.MethodPost, "/auth/validate", handler.ValidateToken)
	req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.TokenValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Valid)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, entity.RoleUser, response.Role)
}

func TestAuthHandler_ValidateToken_Blacklisted(t *testing.T) {
	// Arrange
	handler, _, _, tokenRepo, jwtManager := newTestAuthHandler()
	user := newTestUser()

	accessToken, err := jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role())
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, accessToken).Return(true, nil)

	router := setupTestRouter(http.MethodPost, "/auth/validate", handler.ValidateToken)
	req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_ValidateToken_MissingHeader(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestAuthHandler()

	router := setupTestRouter(http.MethodPost, "/auth/validate", handler.ValidateToken)
	req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==================== Profile Handler Tests ====================

func TestAuthHandler_GetProfile_Success(t *testing.T) {
	// Arrange
	handler, userRepo, _, _, _ := newTestAuthHandler()
	user := newTestUser()

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	router := setupTestRouter(http.MethodGet, "/auth/profile", withUser(user.ID, entity.RoleUser), handler.GetProfile)
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, user.Username, response.Username)
	assert.Equal(t, user.Email, response.Email)
}

func TestAuthHandler_GetProfile_Unauthenticated(t *testing.T) {
	// Arrange - middleware не установил user_id
	handler, _, _, _, _ := newTestAuthHandler()

	router := setupTestRouter(http.MethodGet, "/auth/profile", handler.GetProfile)
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	// Arrange
	handler, userRepo, _, _, _ := newTestAuthHandler()
	user := newTestUser()

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	body, _ := json.Marshal(entity.UpdateProfileRequest{FirstName: "Updated"})

	router := setupTestRouter(http.MethodPatch, "/auth/profile", withUser(user.ID, entity.RoleUser), handler.UpdateProfile)
	req := httptest.NewRequest(http.MethodPatch, "/auth/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Updated", response.FirstName)
}

// ==================== ChangePassword Handler Tests ====================

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	// Arrange
	handler, userRepo, _, _, _ := newTestAuthHandler()
	user := newTestUser()

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	body, _ := json.Marshal(entity.ChangePasswordRequest{
		OldPassword:        "wrong-password",
		NewPassword:        "newpassword456",
		NewPasswordConfirm: "newpassword456",
	})

	router := setupTestRouter(http.MethodPut, "/auth/password/change", withUser(user.ID, entity.RoleUser), handler.ChangePassword)
	req := httptest.NewRequest(http.MethodPut, "/auth/password/change", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Old password is incorrect", response["message"])
}
