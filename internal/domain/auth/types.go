package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role as reported by the remote API.
// Keep string form for easy persistence and comparisons.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is the authenticated principal returned by the "current user" endpoint.
// Field tags mirror the remote API payload.
type Identity struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// DisplayName returns "First Last", falling back to the email.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// Session is the server-side record we persist per browser.
// ID is the opaque value of the session cookie; Token is the bearer token issued by the API.
// Identity is nil until a successful refresh and is kept after the token is dropped so an
// expiry can be reported to a user who was previously signed in.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	Identity  *Identity `json:"identity,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasToken reports whether a bearer token is stored.
func (s Session) HasToken() bool { return s.Token != "" }

// Authenticated reports whether the session holds both a token and a resolved identity.
func (s Session) Authenticated() bool { return s.Token != "" && s.Identity != nil }
