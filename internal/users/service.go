package users

import (
	"context"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/hierarchy"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Service handles user listing and the hierarchy views derived from it.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all users as served by the backend.
func (s *Service) List(ctx context.Context, acct *shared.Account) ([]User, error) {
	return s.repo.List(ctx, acct)
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, acct *shared.Account, id int64) (*User, error) {
	return s.repo.Get(ctx, acct, id)
}

// Create registers a new user through the admin API.
func (s *Service) Create(ctx context.Context, acct *shared.Account, req CreateUserRequest) (*User, error) {
	return s.repo.Create(ctx, acct, req)
}

// Update modifies an existing user.
func (s *Service) Update(ctx context.Context, acct *shared.Account, id int64, req UpdateUserRequest) (*User, error) {
	return s.repo.Update(ctx, acct, id, req)
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return s.repo.Delete(ctx, acct, id)
}

// Supervisores lists users holding the supervisor role.
func (s *Service) Supervisores(ctx context.Context, acct *shared.Account) ([]User, error) {
	return s.repo.Supervisores(ctx, acct)
}

// Coordenadores lists users holding the coordenador role.
func (s *Service) Coordenadores(ctx context.Context, acct *shared.Account) ([]User, error) {
	return s.repo.Coordenadores(ctx, acct)
}

// Managed returns the users the caller manages, per the hierarchy scope:
// everyone for admin and diretor, direct reports for supervisors,
// coordinated vendedores for coordenadores, nobody otherwise.
func (s *Service) Managed(ctx context.Context, acct *shared.Account) ([]User, error) {
	all, err := s.repo.List(ctx, acct)
	if err != nil {
		return nil, err
	}
	role := acct.UserData.ParsedRole()
	if role == ability.RoleVendedor || role == ability.RoleUser || role == ability.RoleUnknown {
		return []User{}, nil
	}
	scope := hierarchy.ScopeFor(currentRef(acct), Refs(all))
	managed := make([]User, 0, len(all))
	for _, u := range all {
		if scope.Contains(u.ID) {
			managed = append(managed, u)
		}
	}
	return managed, nil
}

// Subordinates lists the direct reports of a supervisor. A zero supervisorID
// means the caller.
func (s *Service) Subordinates(ctx context.Context, acct *shared.Account, supervisorID int64) ([]User, error) {
	if supervisorID == 0 {
		supervisorID = acct.UserData.ID
	}
	all, err := s.repo.List(ctx, acct)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0)
	for _, u := range all {
		if hierarchy.IsUnderSupervision(u.Ref(), supervisorID) {
			out = append(out, u)
		}
	}
	return out, nil
}

// VendedoresByCoordenador lists the vendedores coordinated by the given
// user. A zero coordenadorID means the caller.
func (s *Service) VendedoresByCoordenador(ctx context.Context, acct *shared.Account, coordenadorID int64) ([]User, error) {
	if coordenadorID == 0 {
		coordenadorID = acct.UserData.ID
	}
	all, err := s.repo.List(ctx, acct)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0)
	for _, u := range all {
		if hierarchy.IsUnderCoordination(u.Ref(), coordenadorID) {
			out = append(out, u)
		}
	}
	return out, nil
}

// HierarchyStructure assembles the full management tree from the user list.
func (s *Service) HierarchyStructure(ctx context.Context, acct *shared.Account) (*Structure, error) {
	all, err := s.repo.List(ctx, acct)
	if err != nil {
		return nil, err
	}

	structure := &Structure{
		Admins:        filterByRole(all, ability.RoleAdmin),
		Diretores:     filterByRole(all, ability.RoleDiretor),
		Supervisores:  filterByRole(all, ability.RoleSupervisor),
		Coordenadores: filterByRole(all, ability.RoleCoordenador),
		Vendedores:    filterByRole(all, ability.RoleVendedor),
	}

	for _, sup := range structure.Supervisores {
		team := SupervisorTeam{Supervisor: sup, Coordenadores: []User{}, Vendedores: []User{}}
		for _, u := range all {
			if !hierarchy.IsUnderSupervision(u.Ref(), sup.ID) {
				continue
			}
			switch ability.ParseRole(u.Role) {
			case ability.RoleCoordenador:
				team.Coordenadores = append(team.Coordenadores, u)
			case ability.RoleVendedor:
				team.Vendedores = append(team.Vendedores, u)
			}
		}
		structure.SupervisorTeams = append(structure.SupervisorTeams, team)
	}

	for _, coord := range structure.Coordenadores {
		team := CoordenadorTeam{Coordenador: coord, Vendedores: []User{}}
		for _, u := range all {
			if hierarchy.IsUnderCoordination(u.Ref(), coord.ID) {
				team.Vendedores = append(team.Vendedores, u)
			}
		}
		structure.CoordenadorTeams = append(structure.CoordenadorTeams, team)
	}

	return structure, nil
}

func filterByRole(list []User, role ability.Role) []User {
	out := make([]User, 0)
	for _, u := range list {
		if ability.ParseRole(u.Role) == role {
			out = append(out, u)
		}
	}
	return out
}

func currentRef(acct *shared.Account) hierarchy.UserRef {
	return hierarchy.UserRef{
		ID:            acct.UserData.ID,
		Role:          acct.UserData.ParsedRole(),
		SupervisorID:  acct.UserData.SupervisorID,
		CoordenadorID: acct.UserData.CoordenadorID,
	}
}
