package events

import (
	"context"
	"net/url"
	"strconv"

	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

// Repository defines backend access for the events module.
type Repository interface {
	List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Event, error)
	Get(ctx context.Context, acct *shared.Account, id int64) (*Event, error)
	Create(ctx context.Context, acct *shared.Account, payload map[string]any) (*Event, error)
	Update(ctx context.Context, acct *shared.Account, id int64, payload map[string]any) (*Event, error)
	Delete(ctx context.Context, acct *shared.Account, id int64) error
}

// BackendRepository implements Repository against the events REST API.
type BackendRepository struct {
	client *upstream.Client
}

// NewRepository constructs a BackendRepository.
func NewRepository(client *upstream.Client) *BackendRepository {
	return &BackendRepository{client: client}
}

const eventsPath = "/api/events"

func (r *BackendRepository) List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Event, error) {
	query := url.Values{}
	if filters.Calendars != "" {
		query.Set("calendars", filters.Calendars)
	}
	if filters.UserID != 0 {
		query.Set("userId", strconv.FormatInt(filters.UserID, 10))
	}
	var list []Event
	if err := r.client.Get(ctx, acct, eventsPath, query, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BackendRepository) Get(ctx context.Context, acct *shared.Account, id int64) (*Event, error) {
	var e Event
	if err := r.client.Get(ctx, acct, eventsPath+"/"+strconv.FormatInt(id, 10), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BackendRepository) Create(ctx context.Context, acct *shared.Account, payload map[string]any) (*Event, error) {
	var e Event
	if err := r.client.Post(ctx, acct, eventsPath, payload, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BackendRepository) Update(ctx context.Context, acct *shared.Account, id int64, payload map[string]any) (*Event, error) {
	var e Event
	if err := r.client.Put(ctx, acct, eventsPath+"/"+strconv.FormatInt(id, 10), payload, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BackendRepository) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return r.client.Delete(ctx, acct, eventsPath+"/"+strconv.FormatInt(id, 10))
}

var _ Repository = (*BackendRepository)(nil)
