package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// RoleResolver looks up a user's current role.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

// RBAC enforces role-based access control. It must run after Auth. The role
// comes from the profile store on every request, never from the token.
func RBAC(roles RoleResolver, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(SessionKey).(*domain.Session)
			if session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			role, err := roles.RoleOf(c.Request().Context(), session.UserID)
			if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
				return err
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
