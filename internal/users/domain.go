package users

import (
	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/hierarchy"
)

// User is a user account as served by the backend admin API.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	SupervisorID  *int64 `json:"supervisorId,omitempty"`
	CoordenadorID *int64 `json:"coordenadorId,omitempty"`
}

// Ref projects the user onto the slice the hierarchy resolver works with.
func (u User) Ref() hierarchy.UserRef {
	return hierarchy.UserRef{
		ID:            u.ID,
		Role:          ability.ParseRole(u.Role),
		SupervisorID:  u.SupervisorID,
		CoordenadorID: u.CoordenadorID,
	}
}

// Refs converts a user list for the hierarchy resolver.
func Refs(list []User) []hierarchy.UserRef {
	refs := make([]hierarchy.UserRef, len(list))
	for i, u := range list {
		refs[i] = u.Ref()
	}
	return refs
}

// SupervisorTeam groups a supervisor with their direct reports.
type SupervisorTeam struct {
	Supervisor    User   `json:"supervisor"`
	Coordenadores []User `json:"coordenadores"`
	Vendedores    []User `json:"vendedores"`
}

// CoordenadorTeam groups a coordenador with their vendedores.
type CoordenadorTeam struct {
	Coordenador User   `json:"coordenador"`
	Vendedores  []User `json:"vendedores"`
}

// Structure is the full management hierarchy of the organization.
type Structure struct {
	Admins           []User            `json:"admins"`
	Diretores        []User            `json:"diretores"`
	Supervisores     []User            `json:"supervisores"`
	Coordenadores    []User            `json:"coordenadores"`
	Vendedores       []User            `json:"vendedores"`
	SupervisorTeams  []SupervisorTeam  `json:"supervisorTeams"`
	CoordenadorTeams []CoordenadorTeam `json:"coordenadorTeams"`
}
