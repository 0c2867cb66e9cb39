package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// userIDKey is the echo context key for the authenticated user's ID
const userIDKey = "user_id"

// TokenValidator verifies a bearer token and returns the user it belongs to
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// AuthMiddleware provides bearer token validation middleware
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate returns an Echo middleware that validates bearer tokens and
// stores the user ID in the request context
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			userID, err := m.validator.ValidateToken(parts[1])
			if err != nil {
				log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("Token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's ID from the context, or
// uuid.Nil when the request is not authenticated
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// SetUserID stores a user ID in the context (helper for tests)
func SetUserID(c echo.Context, id uuid.UUID) {
	c.Set(userIDKey, id)
}
