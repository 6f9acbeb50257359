package users

import (
	"context"
	"strconv"

	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

// Repository defines backend access for the users module.
type Repository interface {
	List(ctx context.Context, acct *shared.Account) ([]User, error)
	Get(ctx context.Context, acct *shared.Account, id int64) (*User, error)
	Create(ctx context.Context, acct *shared.Account, req CreateUserRequest) (*User, error)
	Update(ctx context.Context, acct *shared.Account, id int64, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, acct *shared.Account, id int64) error
	Supervisores(ctx context.Context, acct *shared.Account) ([]User, error)
	Coordenadores(ctx context.Context, acct *shared.Account) ([]User, error)
}

// BackendRepository implements Repository against the admin REST API.
type BackendRepository struct {
	client *upstream.Client
}

// NewRepository constructs a BackendRepository.
func NewRepository(client *upstream.Client) *BackendRepository {
	return &BackendRepository{client: client}
}

const adminUsersPath = "/api/admin/users"

func (r *BackendRepository) List(ctx context.Context, acct *shared.Account) ([]User, error) {
	var list []User
	if err := r.client.Get(ctx, acct, adminUsersPath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Get(ctx context.Context, acct *shared.Account, id int64) (*User, error) {
	var u User
	if err := r.client.Get(ctx, acct, adminUsersPath+"/"+strconv.FormatInt(id, 10), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BackendRepository) Create(ctx context.Context, acct *shared.Account, req CreateUserRequest) (*User, error) {
	var u User
	if err := r.client.Post(ctx, acct, adminUsersPath, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BackendRepository) Update(ctx context.Context, acct *shared.Account, id int64, req UpdateUserRequest) (*User, error) {
	var u User
	if err := r.client.Put(ctx, acct, adminUsersPath+"/"+strconv.FormatInt(id, 10), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BackendRepository) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return r.client.Delete(ctx, acct, adminUsersPath+"/"+strconv.FormatInt(id, 10))
}

func (r *BackendRepository) Supervisores(ctx context.Context, acct *shared.Account) ([]User, error) {
	var list []User
	if err := r.client.Get(ctx, acct, "/api/admin/supervisores", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Coordenadores(ctx context.Context, acct *shared.Account) ([]User, error) {
	var list []User
	if err := r.client.Get(ctx, acct, "/api/admin/coordenadores", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

var _ Repository = (*BackendRepository)(nil)
