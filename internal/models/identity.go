package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// SessionClaims is the payload of tokens issued by the auth provider.
type SessionClaims struct {
	Role UserRole `json:"role"`
	jwt.RegisteredClaims
}
