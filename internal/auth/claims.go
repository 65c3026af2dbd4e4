package auth

import "mitche/backend/internal/constants"

// UserClaims is the authenticated identity carried through the request
// context. Authorization decisions are made by the permissions.Manager with
// the full user record; claims only say who is calling and how they got in.
type UserClaims interface {
	UserID() string
	Role() constants.Role
	Source() string
}

// SessionClaims are produced by the Redis-backed session middleware.
type SessionClaims struct {
	UserUUID  string
	RoleValue constants.Role
	SessionID string
}

func (c *SessionClaims) UserID() string       { return c.UserUUID }
func (c *SessionClaims) Role() constants.Role { return c.RoleValue }
func (c *SessionClaims) Source() string       { return "SESSION" }

// APIKeyClaims are produced when a trusted integration authenticates with an
// API key and acts on behalf of a user.
type APIKeyClaims struct {
	UserUUID  string
	RoleValue constants.Role
	KeyLabel  string
}

func (c *APIKeyClaims) UserID() string       { return c.UserUUID }
func (c *APIKeyClaims) Role() constants.Role { return c.RoleValue }
func (c *APIKeyClaims) Source() string       { return "API_KEY" }
