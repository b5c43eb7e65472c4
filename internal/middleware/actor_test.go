package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vehiql/testdrive-service/internal/models"
)

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, headers map[string]string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestActor_ExtractsIdentity(t *testing.T) {
	c, err := runMiddleware(t, Actor, map[string]string{
		HeaderUserID:   "user-1",
		HeaderUserRole: "ADMIN",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", ActorID(c))
	assert.Equal(t, models.RoleAdmin, ActorRole(c))
}

func TestActor_DefaultsToUserRole(t *testing.T) {
	c, err := runMiddleware(t, Actor, map[string]string{HeaderUserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, ActorRole(c))
}

func TestActor_RejectsAnonymous(t *testing.T) {
	_, err := runMiddleware(t, Actor, nil)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	WithActor(c, "user-1", models.RoleUser)

	handler := RequireAdmin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := handler(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	WithActor(c2, "admin-1", models.RoleAdmin)
	assert.NoError(t, RequireAdmin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c2))
}
