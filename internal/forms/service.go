package forms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/painel-crm/painel-crm/internal/shared"
)

// Service handles form definitions and responses. Definitions are validated
// and normalized before they reach the backend; submissions are checked
// against the form's required questions.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns all form definitions.
func (s *Service) List(ctx context.Context, acct *shared.Account) ([]Form, error) {
	return s.repo.List(ctx, acct)
}

// Available returns the forms assigned to the caller that currently accept
// responses.
func (s *Service) Available(ctx context.Context, acct *shared.Account) ([]Form, error) {
	list, err := s.repo.Available(ctx, acct)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := make([]Form, 0, len(list))
	for _, f := range list {
		if f.IsActive(now) {
			active = append(active, f)
		}
	}
	return active, nil
}

// Get returns a single form definition.
func (s *Service) Get(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	return s.repo.Get(ctx, acct, id)
}

// Create validates and stores a new form definition.
func (s *Service) Create(ctx context.Context, acct *shared.Account, in FormInput) (*Form, error) {
	if errs := ValidateForm(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(errs, "; "))
	}
	in.Sections = normalizeSections(in.Sections)
	return s.repo.Create(ctx, acct, in)
}

// Update validates and stores changes to a form definition.
func (s *Service) Update(ctx context.Context, acct *shared.Account, id int64, in FormInput) (*Form, error) {
	if errs := ValidateForm(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(errs, "; "))
	}
	in.Sections = normalizeSections(in.Sections)
	return s.repo.Update(ctx, acct, id, in)
}

// Delete removes a form definition.
func (s *Service) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	return s.repo.Delete(ctx, acct, id)
}

// Duplicate copies an existing form definition.
func (s *Service) Duplicate(ctx context.Context, acct *shared.Account, id int64) (*Form, error) {
	return s.repo.Duplicate(ctx, acct, id)
}

// Stats returns the response counters for a form.
func (s *Service) Stats(ctx context.Context, acct *shared.Account, id int64) (*FormStats, error) {
	return s.repo.Stats(ctx, acct, id)
}

// MyResponses lists the caller's responses across forms.
func (s *Service) MyResponses(ctx context.Context, acct *shared.Account) ([]Response, error) {
	return s.repo.MyResponses(ctx, acct)
}

// FormResponses lists every response to a form.
func (s *Service) FormResponses(ctx context.Context, acct *shared.Account, formID int64) ([]Response, error) {
	return s.repo.FormResponses(ctx, acct, formID)
}

// GetResponse returns a single response. Non-admins may only read their own.
func (s *Service) GetResponse(ctx context.Context, acct *shared.Account, id int64) (*Response, error) {
	resp, err := s.repo.GetResponse(ctx, acct, id)
	if err != nil {
		return nil, err
	}
	if resp.UserID != acct.UserData.ID && !acct.UserData.ParsedRole().IsAdmin() {
		return nil, shared.ErrForbidden
	}
	return resp, nil
}

// SaveDraft stores partial answers without required-question checks.
func (s *Service) SaveDraft(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	if in.FormID == 0 {
		return nil, fmt.Errorf("%w: formId is required", shared.ErrValidation)
	}
	return s.repo.SaveDraft(ctx, acct, in)
}

// Submit validates answers against the form and sends the final response.
// The form must still be accepting submissions.
func (s *Service) Submit(ctx context.Context, acct *shared.Account, in ResponseInput) (*Response, error) {
	form, err := s.repo.Get(ctx, acct, in.FormID)
	if err != nil {
		return nil, err
	}
	if !form.IsActive(s.now()) {
		return nil, fmt.Errorf("%w: formulário não está mais ativo", shared.ErrValidation)
	}
	if errs := ValidateResponse(form, in.Responses); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(errs, "; "))
	}
	return s.repo.Submit(ctx, acct, in)
}

// UpdateResponse modifies an existing response.
func (s *Service) UpdateResponse(ctx context.Context, acct *shared.Account, id int64, in ResponseInput) (*Response, error) {
	if _, err := s.GetResponse(ctx, acct, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateResponse(ctx, acct, id, in)
}

// DeleteResponse removes a response.
func (s *Service) DeleteResponse(ctx context.Context, acct *shared.Account, id int64) error {
	if _, err := s.GetResponse(ctx, acct, id); err != nil {
		return err
	}
	return s.repo.DeleteResponse(ctx, acct, id)
}
