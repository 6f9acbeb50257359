package users

import (
	"context"

	"github.com/painel-crm/painel-crm/internal/hierarchy"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Directory exposes the user list as hierarchy references for modules that
// resolve visibility scopes.
type Directory struct {
	repo Repository
}

// NewDirectory builds Directory instance.
func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// Refs lists all users as scope references.
func (d *Directory) Refs(ctx context.Context, acct *shared.Account) ([]hierarchy.UserRef, error) {
	all, err := d.repo.List(ctx, acct)
	if err != nil {
		return nil, err
	}
	return Refs(all), nil
}
