package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bizboard/backoffice/internal/api/metrics"
	"github.com/bizboard/backoffice/internal/core/domain"
)

// RBAC is the role router for API endpoints: the verified role from the
// Auth middleware must be in the allowed set. An empty set means the route
// has no restriction. Runs strictly after Auth, so a mismatch is a 403, not
// a 401.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues(role).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequirePermission consults the capability catalog for a single permission
// code. It complements RBAC for operations whose grant is narrower than a
// whole area.
func RequirePermission(code string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if d := domain.Evaluate(domain.Role(role), code); !d.Allowed {
				metrics.AccessDeniedTotal.WithLabelValues(role).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
