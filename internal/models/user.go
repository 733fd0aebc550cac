// Package models defines the data structures that map to database tables
// and the core types shared by the stores, handlers and list views.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the inventory admin.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is an admin panel account with password and TOTP credentials.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // nil until 2FA enrollment starts
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Needs2FASetup returns true until the user has confirmed a TOTP code once.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}
