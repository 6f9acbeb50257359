package ability

import "strings"

// Role is the closed set of roles known to the dashboard.
type Role int

const (
	// RoleUnknown marks an absent or unrecognized role string.
	RoleUnknown Role = iota
	RoleUser
	RoleVendedor
	RoleCoordenador
	RoleSupervisor
	RoleDiretor
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUser:        "user",
	RoleVendedor:    "vendedor",
	RoleCoordenador: "coordenador",
	RoleSupervisor:  "supervisor",
	RoleDiretor:     "diretor",
	RoleAdmin:       "admin",
}

// ParseRole maps a role string onto the enumeration. Anything not in the
// closed set parses as RoleUnknown so callers fail closed instead of
// falling through on raw strings.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser
	case "vendedor":
		return RoleVendedor
	case "coordenador":
		return RoleCoordenador
	case "supervisor":
		return RoleSupervisor
	case "diretor":
		return RoleDiretor
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// String returns the lowercase wire name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Level returns the hierarchy level of the role. Higher levels imply broader
// default visibility but not a superset of permissions.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 5
	case RoleDiretor:
		return 4
	case RoleSupervisor:
		return 3
	case RoleCoordenador:
		return 2
	case RoleVendedor:
		return 1
	default:
		return 0
	}
}

// Header renders the role for the X-User-Role request header. Unknown roles
// map to USER.
func (r Role) Header() string {
	if name, ok := roleNames[r]; ok && r != RoleUnknown {
		return strings.ToUpper(name)
	}
	return "USER"
}

// IsAdmin reports whether the role carries administrative access. Directors
// count as administrators for route gating purposes.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleDiretor
}
