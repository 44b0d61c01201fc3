package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User roles. Super admins and admins bypass business-level authorization;
// the other three roles gate notification routing and content visibility.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleWriter     = "writer"
	RoleDesigner   = "designer"
	RoleEditor     = "editor"
)

// ValidRoles lists every assignable role
var ValidRoles = []string{RoleSuperAdmin, RoleAdmin, RoleWriter, RoleDesigner, RoleEditor}

type User struct {
	gorm.Model `json:"-"`
	ID         uint           `json:"id" gorm:"primaryKey"`
	Username   string         `json:"username" gorm:"uniqueIndex"`
	Password   string         `json:"-"` // Store hashed password, ignore for JSON serialization
	Roles      pq.StringArray `json:"roles" gorm:"type:text[]"`
}

// IDString returns the user's identity as stored in business rosters,
// content assignment snapshots and socket room names.
func (u *User) IDString() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=superadmin admin writer designer editor"`
}

type UpdateUserRequest struct {
	Username string   `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=8"`
	Roles    []string `json:"roles,omitempty" validate:"omitempty,min=1,dive,oneof=superadmin admin writer designer editor"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthUser is the authenticated actor extracted from a verified token,
// shared by the HTTP middleware and the socket handshake.
type AuthUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the actor holds the given role
func (a AuthUser) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsElevated reports whether the actor bypasses business-level authorization
func (a AuthUser) IsElevated() bool {
	return a.HasRole(RoleSuperAdmin) || a.HasRole(RoleAdmin)
}
