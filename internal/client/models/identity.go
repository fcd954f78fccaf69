// Package models defines client-side data models used by the lost and found CLI.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the authorization role the backend assigns to an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrInvalidRole = errors.New("role must be USER or ADMIN")

// ParseRole normalises s to upper case and checks it is a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Identity is the authenticated user's profile as known to the client.
// The JSON form is the one persisted under the "user" storage key.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Valid reports whether every field is present and non-empty. A stored
// identity failing this check is treated as absent.
func (i *Identity) Valid() bool {
	if i == nil {
		return false
	}
	return i.UserID != 0 &&
		strings.TrimSpace(i.Username) != "" &&
		strings.TrimSpace(i.Email) != "" &&
		strings.TrimSpace(string(i.Role)) != ""
}

// HasRole reports whether the identity holds one of roles.
func (i *Identity) HasRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// PendingLogin exists between submitting credentials and submitting the OTP.
// It is never persisted.
type PendingLogin struct {
	TempToken string
}
