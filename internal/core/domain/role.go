package domain

import "strings"

// Role is the closed set of dashboard roles. The zero value is RoleNone.
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleCollector Role = "collector"
)

// NormalizeRole maps the upstream's free-text role name onto a Role.
// "collectioner" is an upstream spelling of collector. Anything unrecognised
// maps to RoleNone.
func NormalizeRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "collector", "collectioner":
		return RoleCollector
	default:
		return RoleNone
	}
}

// Valid reports whether r is one of the three assignable roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleCollector
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// RoleSet is an allow-list of roles.
type RoleSet []Role

// Has reports whether r is in the set. RoleNone is never a member.
func (s RoleSet) Has(r Role) bool {
	if r == RoleNone {
		return false
	}
	for _, allowed := range s {
		if allowed == r {
			return true
		}
	}
	return false
}

// AllRoles is the allow-list of every assignable role.
var AllRoles = RoleSet{RoleAdmin, RoleManager, RoleCollector}
