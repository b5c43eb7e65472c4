package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vehiql/testdrive-service/internal/models"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	ctxUserID   = "actor_user_id"
	ctxUserRole = "actor_user_role"
)

// Actor extracts the caller's identity set by the upstream auth layer.
// Requests without a user ID are rejected before reaching handlers.
func Actor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(HeaderUserID)
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
		}

		role := models.Role(c.Request().Header.Get(HeaderUserRole))
		if role == "" {
			role = models.RoleUser
		}

		WithActor(c, userID, role)
		return next(c)
	}
}

// RequireAdmin guards administrative routes. Must run after Actor.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !ActorRole(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// WithActor stores the caller's identity on the request context.
func WithActor(c echo.Context, userID string, role models.Role) {
	c.Set(ctxUserID, userID)
	c.Set(ctxUserRole, role)
}

func ActorID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func ActorRole(c echo.Context) models.Role {
	role, _ := c.Get(ctxUserRole).(models.Role)
	return role
}
