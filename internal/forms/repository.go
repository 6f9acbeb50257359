package forms

import (
	"context"
	"strconv"

	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

// Repository defines backend access for the forms module.
type Repository interface {
	List(ctx context.Context, acct *shared.Account) ([]Form, error)
	Available(ctx context.Context, acct *shared.Account) ([]Form, error)
	Get(ctx context.Context, acct *shared.Account, id int64) (*Form, error)
	Create(ctx context.Context, acct *shared.Account, in FormInput) (*Form, error)
	Update(ctx context.Context, acct *shared.Account, id int64, in FormInput) (*Form, error)
	Delete(ctx context.Context, acct *shared.Account, id int64) error
	Duplicate(ctx context.Context, acct *shared.Account, id int64) (*Form, error)
	Stats(ctx context.Context, acct *shared.Account, id int64) (*FormStats, error)

	MyResponses(ctx context.Context, acct *shared.Account) ([]Response, error)
	FormResponses(ctx context.Context, acct *shared.Account, formID int64) ([]Response, error)
	GetResponse(ctx context.Context, acct *shared.Account, id int64) (*Response, error)
	SaveDraft(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error)
	Submit(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error)
	UpdateResponse(ctx context.Context, acct *shared.Account, id int64, in ResponseInput) (*Response, error)
	DeleteResponse(ctx context.Context, acct *shared.Account, id int64) error
}

// BackendRepository implements Repository against the forms REST API.
type BackendRepository struct {
	client *upstream.Client
}

// NewRepository constructs a BackendRepository.
func NewRepository(client *upstream.Client) *BackendRepository {
	return &BackendRepository{client: client}
}

const formsPath = "/api/forms"

func formPath(id int64) string {
	return formsPath + "/" + strconv.FormatInt(id, 10)
}

func responsePath(id int64) string {
	return formsPath + "/responses/" + strconv.FormatInt(id, 10)
}

func (r *BackendRepository) List(ctx context.Context, acct *shared.Account) ([]Form, error) {
	var list []Form
	if err := r.client.Get(ctx, acct, formsPath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Available(ctx context.Context, acct *shared.Account) ([]Form, error) {
	var list []Form
	if err := r.client.Get(ctx, acct, formsPath+"/available", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Get(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	var f Form
	if err := r.client.Get(ctx, acct, formPath(id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *BackendRepository) Create(ctx context.Context, acct *shared.Account, in FormInput) (*Form, error) {
	var f Form
	if err := r.client.Post(ctx, acct, formsPath, in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *BackendRepository) Update(ctx context.Context, acct *shared.Account, id int64, in FormInput) (*Form, error) {
	var f Form
	if err := r.client.Put(ctx, acct, formPath(id), in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *BackendRepository) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return r.client.Delete(ctx, acct, formPath(id))
}

func (r *BackendRepository) Duplicate(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	var f Form
	if err := r.client.Post(ctx, acct, formPath(id)+"/duplicate", struct{}{}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *BackendRepository) Stats(ctx context.Context, acct *shared.Account, id int64) (*FormStats, error) {
	var stats FormStats
	if err := r.client.Get(ctx, acct, formPath(id)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *BackendRepository) MyResponses(ctx context.Context, acct *shared.Account) ([]Response, error) {
	var list []Response
	if err := r.client.Get(ctx, acct, formsPath+"/responses/my", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) FormResponses(ctx context.Context, acct *shared.Account, formID int64) ([]Response, error) {
	var list []Response
	if err := r.client.Get(ctx, acct, formPath(formID)+"/responses", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) GetResponse(ctx context.Context, acct *shared.Account, id int64) (*Response, error) {
	var resp Response
	if err := r.client.Get(ctx, acct, responsePath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) SaveDraft(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	var resp Response
	if err := r.client.Post(ctx, acct, formsPath+"/responses/draft", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) Submit(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	var resp Response
	if err := r.client.Post(ctx, acct, formsPath+"/responses", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) UpdateResponse(ctx context.Context, acct *shared.Account, id int64, in ResponseInput) (*Response, error) {
	var resp Response
	if err := r.client.Put(ctx, acct, responsePath(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) DeleteResponse(ctx context.Context, acct *shared.Account, id int64) error {
	return r.client.Delete(ctx, acct, responsePath(id))
}

var _ Repository = (*BackendRepository)(nil)
