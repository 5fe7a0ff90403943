// Package domain contains the core data types for the Globetrotter API.
// This package depends only on uuid and is imported by every other internal
// package (auth, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the coarse permission level carried in a user's token.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account. PasswordHash is a bcrypt hash and must never
// be serialized into an API response.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the optional profile fields for a sparse update.
// Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}
