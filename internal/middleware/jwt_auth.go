package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// JWTAuthMiddleware checks for a valid JWT and stores the authenticated
// user in the request context. The credential is read from the "token"
// cookie first, falling back to the Authorization header for non-browser
// clients.
func JWTAuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ""
			if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
				tokenString = cookie.Value
			}
			if tokenString == "" {
				authHeader := c.Request().Header.Get("Authorization")
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					tokenString = parts[1]
				}
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(userContextKey, models.AuthUser{
				ID:       claims.UserID,
				Username: claims.Username,
				Roles:    claims.Roles,
			})

			return next(c)
		}
	}
}

// RequireRoles allows the request through only when the authenticated user
// holds at least one of the given roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetAuthUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			for _, role := range roles {
				if user.HasRole(role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access this resource")
		}
	}
}

// GetAuthUser retrieves the authenticated user stored by JWTAuthMiddleware
func GetAuthUser(c echo.Context) (models.AuthUser, bool) {
	user, ok := c.Get(userContextKey).(models.AuthUser)
	return user, ok
}
