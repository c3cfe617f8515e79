package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the authenticated Session.
const SessionKey = "session"

type SessionUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

type Session struct {
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Owns reports whether the session user may act on a record owned by userID.
func (u SessionUser) Owns(userID uuid.UUID) bool {
	return u.ID == userID
}

// CanActOn is true for privileged roles or the owner itself.
func (u SessionUser) CanActOn(userID uuid.UUID) bool {
	return u.Role.IsPrivileged() || u.Owns(userID)
}
