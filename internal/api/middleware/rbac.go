package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/docushop/storefront/internal/core/domain"
)

// RequireRole admits callers whose role claim, set by Auth, is one of roles.
// Anyone else gets domain.ErrForbidden, which the error handler renders as 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := c.Get("role").(string)
			if !slices.Contains(roles, domain.Role(claim)) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
