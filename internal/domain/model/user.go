package model

// Package model contains domain-level types mirroring the Ludika API wire format.
// It is pure and free of transport/adapter concerns.

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's authorization role on the platform.
// Keep string form for easy JSON round-tripping.
type UserRole string

const (
	RoleUser                  UserRole = "user"
	RoleContentModerator      UserRole = "content_moderator"
	RolePlatformAdministrator UserRole = "platform_administrator"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleContentModerator, RolePlatformAdministrator:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable form of the role.
func (r UserRole) DisplayName() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleContentModerator:
		return "Content Moderator"
	case RolePlatformAdministrator:
		return "Platform Administrator"
	default:
		return "Unknown Role"
	}
}

// User is the public profile record returned by the API.
type User struct {
	UUID        uuid.UUID  `json:"uuid"`
	VisibleName string     `json:"visible_name"`
	Role        UserRole   `json:"user_role"`
	Enabled     bool       `json:"enabled"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login"`
}

// IsPrivileged reports whether the user is a content moderator or platform administrator.
func (u User) IsPrivileged() bool {
	return u.Role == RoleContentModerator || u.Role == RolePlatformAdministrator
}

// CanEditGame reports whether the user may edit g. Privileged users may edit any
// game; a regular user may edit only their own game while it is still a draft.
// This mirrors the server-side check and is advisory only (UI gating).
func (u User) CanEditGame(g Game) bool {
	if u.IsPrivileged() {
		return true
	}
	return g.ProposingUser != nil && *g.ProposingUser == u.UUID && g.Status == GameStatusDraft
}

// AuthToken is the login endpoint response carrying an opaque bearer token.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginCredentials is a transient login pair. Never persisted.
type LoginCredentials struct {
	Username string
	Password string
}

// SignupCredentials is a transient signup triple. Never persisted.
type SignupCredentials struct {
	Email       string
	VisibleName string
	Password    string
}

// UserAdminUpdate is the privileged user-update request. Nil fields are left untouched.
type UserAdminUpdate struct {
	Enabled *bool     `json:"enabled,omitempty"`
	Role    *UserRole `json:"user_role,omitempty"`
}
