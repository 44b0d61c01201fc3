package socket

import (
	"errors"
	"net/http"
	"strings"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// Named handshake authentication errors. Their messages are sent to the
// client before the connection is refused.
var (
	ErrTokenRequired = errors.New("authentication error: token required")
	ErrTokenInvalid  = errors.New("authentication error: invalid token")
	ErrTokenExpired  = errors.New("authentication error: token expired")
)

// extractToken pulls the bearer credential from the handshake request,
// checked in priority order: Authorization header, "token" cookie, "token"
// query parameter.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

// Authenticate verifies the handshake credential and decodes the connecting
// user. No token or a bad token refuses the connection.
func Authenticate(r *http.Request, jwtSecret string) (models.AuthUser, error) {
	tokenString := extractToken(r)
	if tokenString == "" {
		return models.AuthUser{}, ErrTokenRequired
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.AuthUser{}, ErrTokenExpired
		}
		return models.AuthUser{}, ErrTokenInvalid
	}
	if !token.Valid {
		return models.AuthUser{}, ErrTokenInvalid
	}

	return models.AuthUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}
