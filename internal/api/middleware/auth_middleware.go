package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils/response"
)

type contextKey string

const UserContextKey = contextKey("user")

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// ClaimsFromContext returns the identity attached by Authorize, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}

// Authenticate only lets requests with a valid token through.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return m.Authorize(IsAuthenticated, next)
}

// Authorize resolves the optional bearer token and enforces authz for the
// request method. A missing identity is reported as 401, an insufficient one as 403.
func (m *AuthMiddleware) Authorize(authz Authorizer, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())
		ctx := r.Context()

		claims, err := m.identify(r)
		if err != nil {
			logger.Warn("Rejected bearer token", slog.String("error", err.Error()))
			response.Error(w, appErrors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if claims != nil {
			logger = logger.With(slog.String("userId", claims.UserID.String()))
			ctx = context.WithValue(ctx, UserContextKey, claims)
			ctx = WithLogger(ctx, logger)
		}

		var allowed bool

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			allowed = authz.CanRead(claims)
		default:
			allowed = authz.CanWrite(claims)
		}

		if !allowed {
			if claims == nil {
				response.Error(w, appErrors.UnauthorizedError("Authentication credentials were not provided"))
				return
			}

			logger.Warn("Permission denied")
			response.Error(w, appErrors.ForbiddenError("You do not have permission to perform this action"))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// identify returns nil claims and no error when the request carries no token.
func (m *AuthMiddleware) identify(r *http.Request) (*models.Claims, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Token is of format : "Bearer <token>"
	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || scheme != "Bearer" || tokenString == "" {
		return nil, errors.New("invalid authorization header format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return m.jwtKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
