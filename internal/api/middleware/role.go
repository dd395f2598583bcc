package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/codeblaze/portal/internal/core/domain"
)

// RequireRole admits only callers whose token role, as set by Auth, is one of
// roles. Rejections surface as domain.ErrForbidden so the central error
// handler renders the usual {"error": ...} envelope.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, r := range roles {
				if role != "" && role == r {
					return next(c)
				}
			}
			return fmt.Errorf("%w: role %q may not access %s", domain.ErrForbidden, role, c.Path())
		}
	}
}
