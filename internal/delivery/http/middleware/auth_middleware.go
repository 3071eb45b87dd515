package middleware

import (
	"strings"

	"darkstore/internal/delivery/http/response"
	"darkstore/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const keyAdminSubject = "adminSubject"

// AuthMiddleware guards dashboard routes with a bearer access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Authorization header and stores the token
// subject on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		subject, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(keyAdminSubject, subject)

		return next(c)
	}
}

// GetAdminSubject returns the authenticated operator set by Authenticate.
func GetAdminSubject(c echo.Context) (string, bool) {
	subject, ok := c.Get(keyAdminSubject).(string)

	return subject, ok && subject != ""
}
