package clients

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Service handles client record operations. Scope filtering here is a
// display convenience; the backend enforces the authoritative scope.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns client records sorted by name with pt-BR collation.
func (s *Service) List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Client, error) {
	list, err := s.repo.List(ctx, acct, filters)
	if err != nil {
		return nil, err
	}
	list = s.visibleClients(acct, list)
	sortByName(list)
	return list, nil
}

// Get returns a single client, denied when the caller's ability rules scope
// client reads to another salesperson.
func (s *Service) Get(ctx context.Context, acct *shared.Account, id int64) (*Client, error) {
	c, err := s.repo.Get(ctx, acct, id)
	if err != nil {
		return nil, err
	}
	evaluator := ability.NewEvaluator(acct.Abilities(), s.logger)
	if !evaluator.Can(ability.ActionRead, ability.SubjectClients, c.Record()) {
		return nil, shared.ErrForbidden
	}
	return c, nil
}

// Create registers a new client. Salespeople only create clients assigned
// to themselves.
func (s *Service) Create(ctx context.Context, acct *shared.Account, req CreateClientRequest) (*Client, error) {
	if acct.UserData.ParsedRole() == ability.RoleVendedor {
		id := acct.UserData.ID
		req.SalespersonID = &id
	}
	return s.repo.Create(ctx, acct, req)
}

// Update modifies an existing client.
func (s *Service) Update(ctx context.Context, acct *shared.Account, id int64, req UpdateClientRequest) (*Client, error) {
	return s.repo.Update(ctx, acct, id, req)
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return s.repo.Delete(ctx, acct, id)
}

// Available lists clients selectable when scheduling an event.
func (s *Service) Available(ctx context.Context, acct *shared.Account) ([]Client, error) {
	list, err := s.repo.Available(ctx, acct)
	if err != nil {
		return nil, err
	}
	sortByName(list)
	return list, nil
}

// BySalesperson lists the clients assigned to a salesperson.
func (s *Service) BySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) ([]Client, error) {
	return s.repo.BySalesperson(ctx, acct, salespersonID)
}

// CountBySalesperson counts active clients of a salesperson.
func (s *Service) CountBySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) (int, error) {
	return s.repo.CountBySalesperson(ctx, acct, salespersonID)
}

// visibleClients drops records outside the caller's ability scope. Only the
// vendedor role carries a record-conditioned read rule, so other roles pass
// through untouched.
func (s *Service) visibleClients(acct *shared.Account, list []Client) []Client {
	evaluator := ability.NewEvaluator(acct.Abilities(), s.logger)
	out := make([]Client, 0, len(list))
	for _, c := range list {
		if evaluator.Can(ability.ActionRead, ability.SubjectClients, c.Record()) {
			out = append(out, c)
		}
	}
	return out
}

func sortByName(list []Client) {
	collator := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		return collator.CompareString(list[i].Name, list[j].Name) < 0
	})
}
