package domain

import "fmt"

// Role of the authenticated user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Session identifies the authenticated user for the lifetime of a request or a poller
type Session struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for back-office sessions
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanAccess returns true if the session may see data owned by ownerID
func (s Session) CanAccess(ownerID int64) bool {
	return s.IsAdmin() || s.UserID == ownerID
}

// Key identifies the session scope, e.g. "client:42"
func (s Session) Key() string {
	return fmt.Sprintf("%s:%d", s.Role, s.UserID)
}
