//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"strings"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
)

// RoleFilterAll is the role filter value that disables role filtering.
const RoleFilterAll = "All"

// User is a row of the users list as returned by the remote API.
type User struct {
	ID        string          `json:"_id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      domainauth.Role `json:"role"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the row belongs to an admin account.
func (u User) IsAdmin() bool { return u.Role == domainauth.RoleAdmin }

// UpdateProfileRequest is the body of profile edits (self and admin edits).
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest is the body of PUT /users/updatePassword/:id.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
