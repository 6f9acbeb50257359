// Package hierarchy derives record visibility from the management relations
// encoded on user records. The scope it computes is advisory for display
// filtering; the upstream backend enforces the authoritative scope.
package hierarchy

import "github.com/painel-crm/painel-crm/internal/ability"

// UserRef is the slice of a user record the scope resolver needs.
type UserRef struct {
	ID            int64        `json:"id"`
	Role          ability.Role `json:"-"`
	SupervisorID  *int64       `json:"supervisorId,omitempty"`
	CoordenadorID *int64       `json:"coordenadorId,omitempty"`
}

// Scope is the set of user ids whose records the caller may list.
type Scope map[int64]struct{}

// Contains reports whether the user id is in scope.
func (s Scope) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the scope as a slice, in no particular order.
func (s Scope) IDs() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// ScopeFor computes whose records the current user may see.
//
// Admin and diretor see everyone. A supervisor sees direct reports only
// (users whose supervisorId points at them, one hop). A coordenador sees
// vendedores whose coordenadorId points at them. Everyone else, including
// unrecognized roles, sees only themselves.
func ScopeFor(current UserRef, allUsers []UserRef) Scope {
	scope := make(Scope)
	switch current.Role {
	case ability.RoleAdmin, ability.RoleDiretor:
		for _, u := range allUsers {
			scope[u.ID] = struct{}{}
		}
	case ability.RoleSupervisor:
		for _, u := range allUsers {
			if u.SupervisorID != nil && *u.SupervisorID == current.ID {
				scope[u.ID] = struct{}{}
			}
		}
	case ability.RoleCoordenador:
		for _, u := range allUsers {
			if u.CoordenadorID != nil && *u.CoordenadorID == current.ID && u.Role == ability.RoleVendedor {
				scope[u.ID] = struct{}{}
			}
		}
	default:
		scope[current.ID] = struct{}{}
	}
	return scope
}

// IsUnderSupervision reports whether the user is a direct report of the
// supervisor.
func IsUnderSupervision(user UserRef, supervisorID int64) bool {
	return user.SupervisorID != nil && *user.SupervisorID == supervisorID
}

// IsUnderCoordination reports whether the user is a vendedor coordinated by
// the given coordenador.
func IsUnderCoordination(user UserRef, coordenadorID int64) bool {
	return user.CoordenadorID != nil && *user.CoordenadorID == coordenadorID && user.Role == ability.RoleVendedor
}
