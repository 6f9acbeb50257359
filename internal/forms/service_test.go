package forms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painel-crm/painel-crm/internal/shared"
)

type mockRepository struct {
	forms     map[int64]Form
	responses map[int64]Response
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		forms:     make(map[int64]Form),
		responses: make(map[int64]Response),
		nextID:    100,
	}
}

func (m *mockRepository) List(ctx context.Context, acct *shared.Account) ([]Form, error) {
	out := make([]Form, 0, len(m.forms))
	for _, f := range m.forms {
		out = append(out, f)
	}
	return out, nil
}

func (m *mockRepository) Available(ctx context.Context, acct *shared.Account) ([]Form, error) {
	return m.List(ctx, acct)
}

func (m *mockRepository) Get(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	f, ok := m.forms[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &f, nil
}

func (m *mockRepository) Create(ctx context.Context, acct *shared.Account, in FormInput) (*Form, error) {
	m.nextID++
	f := Form{ID: m.nextID, Title: in.Title, Status: in.Status,
		StartDate: in.StartDate, EndDate: in.EndDate,
		AssignedUsers: in.AssignedUsers, Sections: in.Sections}
	m.forms[f.ID] = f
	return &f, nil
}

func (m *mockRepository) Update(ctx context.Context, acct *shared.Account, id int64, in FormInput) (*Form, error) {
	f, ok := m.forms[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	f.Title = in.Title
	f.Sections = in.Sections
	m.forms[id] = f
	return &f, nil
}

func (m *mockRepository) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	delete(m.forms, id)
	return nil
}

func (m *mockRepository) Duplicate(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	f, ok := m.forms[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	m.nextID++
	copied := f
	copied.ID = m.nextID
	copied.Title = f.Title + " (cópia)"
	m.forms[copied.ID] = copied
	return &copied, nil
}

func (m *mockRepository) Stats(ctx context.Context, acct *shared.Account, id int64) (*FormStats, error) {
	return &FormStats{FormID: id}, nil
}

func (m *mockRepository) MyResponses(ctx context.Context, acct *shared.Account) ([]Response, error) {
	out := make([]Response, 0)
	for _, r := range m.responses {
		if r.UserID == acct.UserData.ID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepository) FormResponses(ctx context.Context, acct *shared.Account, formID int64) ([]Response, error) {
	out := make([]Response, 0)
	for _, r := range m.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepository) GetResponse(ctx context.Context, acct *shared.Account, id int64) (*Response, error) {
	r, ok := m.responses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &r, nil
}

func (m *mockRepository) SaveDraft(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	m.nextID++
	r := Response{ID: m.nextID, FormID: in.FormID, UserID: acct.UserData.ID, Status: StatusDraft, Responses: in.Responses}
	m.responses[r.ID] = r
	return &r, nil
}

func (m *mockRepository) Submit(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	m.nextID++
	now := time.Now()
	r := Response{ID: m.nextID, FormID: in.FormID, UserID: acct.UserData.ID, Status: StatusCompleted,
		Responses: in.Responses, SubmittedAt: &now}
	m.responses[r.ID] = r
	return &r, nil
}

func (m *mockRepository) UpdateResponse(ctx context.Context, acct *shared.Account, id int64, in ResponseInput) (*Response, error) {
	r, ok := m.responses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	r.Responses = in.Responses
	m.responses[id] = r
	return &r, nil
}

func (m *mockRepository) DeleteResponse(ctx context.Context, acct *shared.Account, id int64) error {
	if _, ok := m.responses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.responses, id)
	return nil
}

func acctFor(id int64, role string) *shared.Account {
	return &shared.Account{AccessToken: "t", UserData: shared.Identity{ID: id, Role: role}}
}

func fixedService(repo Repository, at time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return at }
	return svc
}

func activeForm(id int64) Form {
	return Form{
		ID:            id,
		Title:         "Pesquisa",
		Status:        StatusActive,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		AssignedUsers: []int64{10},
		Sections: []Section{{
			ID: "s1", Title: "Geral",
			Questions: []Question{{ID: "q1", Title: "Comentário", Type: QuestionText, Required: true}},
		}},
	}
}

func TestAvailableFiltersInactiveForms(t *testing.T) {
	repo := newMockRepository()
	repo.forms[1] = activeForm(1)

	expired := activeForm(2)
	expired.EndDate = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.forms[2] = expired

	inactive := activeForm(3)
	inactive.Status = StatusInactive
	repo.forms[3] = inactive

	svc := fixedService(repo, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	list, err := svc.Available(context.Background(), acctFor(10, "vendedor"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestCreateValidatesAndNormalizes(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), acctFor(1, "admin"), FormInput{})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "Título é obrigatório")

	in := FormInput{
		Title:         "Pesquisa",
		Status:        StatusActive,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		AssignedUsers: []int64{10},
		Sections: []Section{{
			ID: "s1", Title: "Geral",
			Questions: []Question{{ID: "q1", Title: "Nota", Type: QuestionSelect, Options: []string{"1", "", "2"}}},
		}},
	}
	created, err := svc.Create(context.Background(), acctFor(1, "admin"), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, created.Sections[0].Questions[0].Options)
}

func TestSubmitChecksFormStillActive(t *testing.T) {
	repo := newMockRepository()
	repo.forms[1] = activeForm(1)

	svc := fixedService(repo, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	_, err := svc.Submit(context.Background(), acctFor(10, "vendedor"), ResponseInput{
		FormID:    1,
		Responses: map[string]any{"q1": "tudo certo"},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "formulário não está mais ativo")
}

func TestSubmitChecksRequiredAnswers(t *testing.T) {
	repo := newMockRepository()
	repo.forms[1] = activeForm(1)
	svc := fixedService(repo, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Submit(context.Background(), acctFor(10, "vendedor"), ResponseInput{FormID: 1})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "Campo obrigatório")

	resp, err := svc.Submit(context.Background(), acctFor(10, "vendedor"), ResponseInput{
		FormID:    1,
		Responses: map[string]any{"q1": "tudo certo"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.NotNil(t, resp.SubmittedAt)
}

func TestSaveDraftRequiresForm(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.SaveDraft(context.Background(), acctFor(10, "vendedor"), ResponseInput{})
	assert.ErrorIs(t, err, shared.ErrValidation)

	resp, err := svc.SaveDraft(context.Background(), acctFor(10, "vendedor"), ResponseInput{FormID: 1})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, resp.Status)
}

func TestGetResponseOwnership(t *testing.T) {
	repo := newMockRepository()
	repo.responses[1] = Response{ID: 1, FormID: 1, UserID: 10}
	svc := NewService(repo)
	ctx := context.Background()

	resp, err := svc.GetResponse(ctx, acctFor(10, "vendedor"), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.UserID)

	_, err = svc.GetResponse(ctx, acctFor(11, "vendedor"), 1)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.GetResponse(ctx, acctFor(1, "admin"), 1)
	assert.NoError(t, err, "admins read any response")

	_, err = svc.GetResponse(ctx, acctFor(2, "diretor"), 1)
	assert.NoError(t, err)
}

func TestUpdateResponseGoesThroughOwnership(t *testing.T) {
	repo := newMockRepository()
	repo.responses[1] = Response{ID: 1, FormID: 1, UserID: 10}
	svc := NewService(repo)

	_, err := svc.UpdateResponse(context.Background(), acctFor(11, "vendedor"), 1, ResponseInput{FormID: 1})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.DeleteResponse(context.Background(), acctFor(11, "vendedor"), 1)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.DeleteResponse(context.Background(), acctFor(10, "vendedor"), 1)
	assert.NoError(t, err)
}

func TestDuplicate(t *testing.T) {
	repo := newMockRepository()
	repo.forms[1] = activeForm(1)
	svc := NewService(repo)

	copied, err := svc.Duplicate(context.Background(), acctFor(1, "admin"), 1)
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), copied.ID)
	assert.Contains(t, copied.Title, "Pesquisa")
}
