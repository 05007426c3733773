package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequirePermission rejects requests whose authenticated user lacks the
// given permission.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.(*AppContext).User
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			for _, p := range user.Permissions {
				if p == permission {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}
	}
}
