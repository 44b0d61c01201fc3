package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func issueToken(t *testing.T, secret string, roles []string, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   "7",
		Username: "wanda",
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runMiddleware(req *http.Request, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return rec, handler(c)
}

func TestJWTAuthMiddleware(t *testing.T) {
	valid := issueToken(t, testSecret, []string{models.RoleWriter}, time.Now().Add(time.Hour))

	t.Run("cookie credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: valid})

		rec, err := runMiddleware(req, JWTAuthMiddleware(testSecret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+valid)

		_, err := runMiddleware(req, JWTAuthMiddleware(testSecret))
		assert.NoError(t, err)
	})

	t.Run("stores the auth user in context", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: valid})
		c := e.NewContext(req, httptest.NewRecorder())

		handler := JWTAuthMiddleware(testSecret)(func(c echo.Context) error {
			user, ok := GetAuthUser(c)
			require.True(t, ok)
			assert.Equal(t, "7", user.ID)
			assert.Equal(t, "wanda", user.Username)
			assert.Equal(t, []string{models.RoleWriter}, user.Roles)
			return nil
		})
		require.NoError(t, handler(c))
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := runMiddleware(req, JWTAuthMiddleware(testSecret))
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, "Token is required", httpErr.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		forged := issueToken(t, "other-secret", []string{models.RoleWriter}, time.Now().Add(time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: forged})

		_, err := runMiddleware(req, JWTAuthMiddleware(testSecret))
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, "Invalid token", httpErr.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := issueToken(t, testSecret, []string{models.RoleWriter}, time.Now().Add(-time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: expired})

		_, err := runMiddleware(req, JWTAuthMiddleware(testSecret))
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, "Token expired", httpErr.Message)
	})
}

func TestRequireRoles(t *testing.T) {
	withUser := func(user models.AuthUser) echo.Context {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user", user)
		return c
	}
	okHandler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("allows a matching role", func(t *testing.T) {
		c := withUser(models.AuthUser{ID: "1", Roles: []string{models.RoleAdmin}})
		err := RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)(okHandler)(c)
		assert.NoError(t, err)
	})

	t.Run("rejects a non-matching role", func(t *testing.T) {
		c := withUser(models.AuthUser{ID: "1", Roles: []string{models.RoleDesigner}})
		err := RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)(okHandler)(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("rejects when unauthenticated", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := RequireRoles(models.RoleAdmin)(okHandler)(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
