package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/repositories/mocks"
	service "github.com/storefront-labs/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-secret")

func setupUserServiceTest(t *testing.T) (service.UserService, *mocks.UserRepository, *mocks.RateLimitRepository) {
	mockRepo := mocks.NewUserRepository(t)
	mockLimiter := mocks.NewRateLimitRepository(t)

	return service.NewUserService(mockRepo, mockLimiter, testJWTKey, time.Hour), mockRepo, mockLimiter
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "password123",
		FirstName: "Ana",
		LastName:  "Lima",
	}

	t.Run("Success - User Registration", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)

		mockRepo.On("CreateUser", mock.Anything,
			mock.MatchedBy(func(u *models.User) bool {
				return u.Email == req.Email && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) == nil
			}),
			mock.MatchedBy(func(c *models.Customer) bool {
				return c.Membership == models.MembershipBronze && c.FirstName == "Ana" && c.UserID != uuid.Nil
			}),
		).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, req.Email, user.Email)
		assert.NotEqual(t, req.Password, user.Password)
		assert.False(t, user.IsStaff)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)
		mockRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Nil(t, user)
		assertAppErrorCode(t, err, appErrors.ErrCodeDuplicateEntry)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)
		mockRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Nil(t, user)
		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.User{ID: uuid.New(), Email: "ana@example.com", Password: string(hash), IsStaff: true}
	allowed := repository.RateLimitResult{Allowed: true, Remaining: 4}

	t.Run("Success - Valid Credentials", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockLimiter := setupUserServiceTest(t)
		mockLimiter.On("CheckLoginRateLimit", mock.Anything, stored.Email).Return(allowed, nil).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, stored.Email).Return(stored, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "password123"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3600, resp.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return testJWTKey, nil })
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
		assert.True(t, claims.IsStaff)
	})

	t.Run("Failure - Invalid Password", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockLimiter := setupUserServiceTest(t)
		mockLimiter.On("CheckLoginRateLimit", mock.Anything, stored.Email).Return(allowed, nil).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, stored.Email).Return(stored, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "wrong"})

		// Assert
		assert.Nil(t, resp)
		appErr := assertAppErrorCode(t, err, appErrors.ErrCodeUnauthorized)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	})

	t.Run("Failure - User not found", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockLimiter := setupUserServiceTest(t)
		mockLimiter.On("CheckLoginRateLimit", mock.Anything, "nobody@example.com").Return(allowed, nil).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "x"})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeUnauthorized)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService, _, mockLimiter := setupUserServiceTest(t)
		mockLimiter.On("CheckLoginRateLimit", mock.Anything, stored.Email).Return(repository.RateLimitResult{RetryAfter: 12 * time.Second}, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "password123"})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeTooManyRequests)
		assert.Contains(t, err.Error(), "12 seconds")
	})

	t.Run("Failure - Rate limiter unavailable", func(t *testing.T) {
		// Arrange
		userService, _, mockLimiter := setupUserServiceTest(t)
		mockLimiter.On("CheckLoginRateLimit", mock.Anything, stored.Email).Return(repository.RateLimitResult{}, errors.New("redis down")).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: stored.Email, Password: "password123"})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success - User Found", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)
		mockRepo.On("GetUserByID", mock.Anything, id).Return(&models.User{ID: id}, nil).Once()

		// Act
		user, err := userService.GetUserByID(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("Failure - User not Found", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)
		mockRepo.On("GetUserByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		// Act
		user, err := userService.GetUserByID(ctx, id)

		// Assert
		assert.Nil(t, user)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}
