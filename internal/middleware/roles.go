package middleware

import (
	"net/http"

	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireRole gates a route group to the given roles. The role was placed in
// the context by AuthMiddleware; STAFF users fail here on write endpoints
// while keeping read and sell access.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetUserRoleFromContext(c)
			if !ok {
				logger.FromContext(c).Warn("Missing role in context")
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "insufficient permissions"})
			}

			if _, ok := allowed[role]; !ok {
				logger.FromContext(c).Warn("Role not permitted for this endpoint",
					zap.String("role", role),
					zap.String("path", c.Path()))
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "insufficient permissions"})
			}

			return next(c)
		}
	}
}
