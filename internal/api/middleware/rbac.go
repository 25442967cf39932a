package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// RBAC is the coarse route-level role gate. Fine-grained scope and field
// rules are enforced by the authz engine inside the services; this only
// keeps entire route groups away from roles that can never use them.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "you do not have the necessary permissions"})
			}
			return next(c)
		}
	}
}
