package middleware

import (
	"net/http"
	"strings"

	"wedsite/internal/domain/models"
	libjwt "wedsite/internal/lib/jwt"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "uid"
	ContextRole   = "role"
)

// JWT verifies the Bearer token and stores uid/role on the request context.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}

			claims, err := libjwt.Parse(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

// RequireRole rejects requests whose token carries a different role.
func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if got, ok := c.Get(ContextRole).(models.Role); !ok || got != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
