package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

// Authorize admits the request only when the authenticated caller's role
// grants the given permission. Pure predicate over the identity injected by
// Auth; roles are matched exactly, with no hierarchy.
func Authorize(perm domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := CallerIdentity(c)
			if identity == nil || !identity.Role.Can(perm) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "access forbidden"})
			}
			return next(c)
		}
	}
}
