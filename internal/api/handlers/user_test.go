package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/api/handlers"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/services/mocks"
	"github.com/storefront-labs/storefront-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	reqBody := models.RegisterRequest{Email: "ana@example.com", Password: "password123", FirstName: "Ana", LastName: "Lima"}

	t.Run("Success - User Registration", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		mockService.On("Register", mock.Anything, &reqBody).Return(&models.User{ID: uuid.New(), Email: reqBody.Email, Password: "hash"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, reqBody), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash")
	})

	t.Run("Failure - Password too short", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		short := reqBody
		short.Password = "abc"

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, short), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		mockService.On("Register", mock.Anything, &reqBody).Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, reqBody), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	reqBody := models.LoginRequest{Email: "ana@example.com", Password: "password123"}

	t.Run("Success - Valid Credentials", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		mockService.On("Login", mock.Anything, &reqBody).Return(&models.LoginResponse{Token: "jwt", ExpiresIn: 3600}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", jsonBody(t, reqBody), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.LoginResponse
		decodeResponse(t, rr, &resp)
		assert.Equal(t, "jwt", resp.Token)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		mockService.On("Login", mock.Anything, &reqBody).Return(nil, appErrors.TooManyRequestsError("Too many login attempts. Try again in 12 seconds")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", jsonBody(t, reqBody), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}

func TestProfile(t *testing.T) {

	t.Run("Success - Profile of the caller", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewUserService(t)
		userHandler := handlers.NewUserHandler(mockService)
		userID := uuid.New()
		mockService.On("GetUserByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Profile().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
