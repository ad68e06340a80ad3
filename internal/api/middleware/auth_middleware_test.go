package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(t *testing.T, userID uuid.UUID, isStaff bool, duration time.Duration, key []byte, method jwt.SigningMethod) string {
	t.Helper()

	claims := &models.Claims{
		UserID:  userID,
		Email:   "test@example.com",
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "User claims should be in context")
		assert.Equal(t, userID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success - Valid Token",
			authHeader:     "Bearer " + createTestToken(t, userID, false, time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - Missing Authorization Header",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "Failure - Wrong Scheme",
			authHeader:     "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "Failure - Expired Token",
			authHeader:     "Bearer " + createTestToken(t, userID, false, -time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "Failure - Wrong Signing Key",
			authHeader:     "Bearer " + createTestToken(t, userID, false, time.Hour, []byte("another-key"), jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "Failure - Malformed Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(next).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedCode)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	customerToken := "Bearer " + createTestToken(t, uuid.New(), false, time.Hour, testJwtKey, jwt.SigningMethodHS256)
	staffToken := "Bearer " + createTestToken(t, uuid.New(), true, time.Hour, testJwtKey, jwt.SigningMethodHS256)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authz          middleware.Authorizer
		method         string
		authHeader     string
		expectedStatus int
	}{
		{"Success - Anonymous read on read-only route", middleware.IsAdminOrReadOnly, http.MethodGet, "", http.StatusOK},
		{"Failure - Anonymous write on read-only route", middleware.IsAdminOrReadOnly, http.MethodPost, "", http.StatusUnauthorized},
		{"Failure - Customer write on read-only route", middleware.IsAdminOrReadOnly, http.MethodPatch, customerToken, http.StatusForbidden},
		{"Success - Staff write on read-only route", middleware.IsAdminOrReadOnly, http.MethodDelete, staffToken, http.StatusOK},
		{"Success - Anonymous write on open route", middleware.AllowAny, http.MethodPost, "", http.StatusOK},
		{"Failure - Customer read on admin route", middleware.IsAdmin, http.MethodGet, customerToken, http.StatusForbidden},
		{"Success - Staff read on admin route", middleware.IsAdmin, http.MethodGet, staffToken, http.StatusOK},
		{"Failure - Anonymous on authenticated route", middleware.IsAuthenticated, http.MethodGet, "", http.StatusUnauthorized},
		{"Success - Customer on authenticated route", middleware.IsAuthenticated, http.MethodPost, customerToken, http.StatusOK},
		{"Failure - Invalid token on open route", middleware.AllowAny, http.MethodGet, "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(tc.method, "/api/v1/products", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authorize(tc.authz, next).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestClaimsFromContext(t *testing.T) {
	t.Run("Failure - No claims in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		claims, ok := middleware.ClaimsFromContext(req.Context())

		assert.False(t, ok)
		assert.Nil(t, claims)
	})
}
