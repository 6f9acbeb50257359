package clients

import (
	"context"
	"net/url"
	"strconv"

	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

// Repository defines backend access for the clients module.
type Repository interface {
	List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Client, error)
	Get(ctx context.Context, acct *shared.Account, id int64) (*Client, error)
	Create(ctx context.Context, acct *shared.Account, req CreateClientRequest) (*Client, error)
	Update(ctx context.Context, acct *shared.Account, id int64, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, acct *shared.Account, id int64) error
	Available(ctx context.Context, acct *shared.Account) ([]Client, error)
	BySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) ([]Client, error)
	CountBySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) (int, error)
}

// BackendRepository implements Repository against the clients REST API.
type BackendRepository struct {
	client *upstream.Client
}

// NewRepository constructs a BackendRepository.
func NewRepository(client *upstream.Client) *BackendRepository {
	return &BackendRepository{client: client}
}

const clientsPath = "/api/clients"

func (r *BackendRepository) List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Client, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	var list []Client
	if err := r.client.Get(ctx, acct, clientsPath, query, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Get(ctx context.Context, acct *shared.Account, id int64) (*Client, error) {
	var c Client
	if err := r.client.Get(ctx, acct, clientsPath+"/"+strconv.FormatInt(id, 10), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BackendRepository) Create(ctx context.Context, acct *shared.Account, req CreateClientRequest) (*Client, error) {
	var c Client
	if err := r.client.Post(ctx, acct, clientsPath, req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BackendRepository) Update(ctx context.Context, acct *shared.Account, id int64, req UpdateClientRequest) (*Client, error) {
	var c Client
	if err := r.client.Put(ctx, acct, clientsPath+"/"+strconv.FormatInt(id, 10), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BackendRepository) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return r.client.Delete(ctx, acct, clientsPath+"/"+strconv.FormatInt(id, 10))
}

func (r *BackendRepository) Available(ctx context.Context, acct *shared.Account) ([]Client, error) {
	var list []Client
	if err := r.client.Get(ctx, acct, clientsPath+"/available", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) BySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) ([]Client, error) {
	var list []Client
	if err := r.client.Get(ctx, acct, clientsPath+"/vendedor/"+strconv.FormatInt(salespersonID, 10), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) CountBySalesperson(ctx context.Context, acct *shared.Account, salespersonID int64) (int, error) {
	var res struct {
		Count int `json:"count"`
	}
	if err := r.client.Get(ctx, acct, clientsPath+"/vendedor/"+strconv.FormatInt(salespersonID, 10)+"/count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

var _ Repository = (*BackendRepository)(nil)
