package domain

import "strings"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r, true
	default:
		return "", false
	}
}

// IsPrivileged reports whether the role may act on records it does not own.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string { return string(r) }
