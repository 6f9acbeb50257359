package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/hierarchy"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Directory lists user references for scope resolution. The users module
// provides the production implementation.
type Directory interface {
	Refs(ctx context.Context, acct *shared.Account) ([]hierarchy.UserRef, error)
}

// Service handles calendar events: visibility filtering, date normalization,
// ownership checks, and the stats aggregation.
type Service struct {
	repo      Repository
	directory Directory
	logger    *slog.Logger
	loc       *time.Location
}

// NewService builds Service instance.
func NewService(repo Repository, directory Directory, logger *slog.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, directory: directory, logger: logger, loc: loc}
}

// List returns the events the caller may see. Events and the user directory
// are fetched in parallel; the hierarchy scope then filters by owner. The
// caller's own events are always included.
func (s *Service) List(ctx context.Context, acct *shared.Account, filters ListFilters) ([]Event, error) {
	var (
		all  []Event
		refs []hierarchy.UserRef
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.repo.List(gctx, acct, filters)
		return err
	})
	g.Go(func() error {
		var err error
		refs, err = s.directory.Refs(gctx, acct)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scope := hierarchy.ScopeFor(currentRef(acct), refs)
	visible := make([]Event, 0, len(all))
	for _, e := range all {
		if e.Owner() == acct.UserData.ID || scope.Contains(e.Owner()) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// Get returns a single event after an ownership check against the caller's
// abilities.
func (s *Service) Get(ctx context.Context, acct *shared.Account, id int64) (*Event, error) {
	e, err := s.repo.Get(ctx, acct, id)
	if err != nil {
		return nil, err
	}
	eval := ability.NewEvaluator(acct.Abilities(), s.logger)
	if !eval.Can(ability.ActionRead, ability.SubjectCalendar, e.Record()) &&
		!eval.Can(ability.ActionManage, ability.SubjectCalendar, e.Record()) {
		return nil, shared.ErrForbidden
	}
	return e, nil
}

// Create registers a new event. Scheduling on behalf of another user needs
// coordenador level or above; everyone else gets the event assigned to
// themselves.
func (s *Service) Create(ctx context.Context, acct *shared.Account, in EventInput) (*Event, error) {
	payload, err := s.buildPayload(acct, in)
	if err != nil {
		return nil, err
	}
	payload["userId"] = acct.UserData.ID
	return s.repo.Create(ctx, acct, payload)
}

// Update modifies an event the caller manages.
func (s *Service) Update(ctx context.Context, acct *shared.Account, id int64, in EventInput) (*Event, error) {
	existing, err := s.repo.Get(ctx, acct, id)
	if err != nil {
		return nil, err
	}
	eval := ability.NewEvaluator(acct.Abilities(), s.logger)
	if !eval.Can(ability.ActionManage, ability.SubjectCalendar, existing.Record()) {
		return nil, shared.ErrForbidden
	}
	payload, err := s.buildPayload(acct, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, acct, id, payload)
}

// Delete removes an event the caller manages.
func (s *Service) Delete(ctx context.Context, acct *shared.Account, id int64) error {
	existing, err := s.repo.Get(ctx, acct, id)
	if err != nil {
		return err
	}
	eval := ability.NewEvaluator(acct.Abilities(), s.logger)
	if !eval.Can(ability.ActionManage, ability.SubjectCalendar, existing.Record()) {
		return shared.ErrForbidden
	}
	return s.repo.Delete(ctx, acct, id)
}

// StatsFor aggregates event counters for a user. Both the English and the
// Portuguese status spellings count toward the same bucket.
func (s *Service) StatsFor(ctx context.Context, acct *shared.Account, userID int64) (*Stats, error) {
	if userID == 0 {
		userID = acct.UserData.ID
	}
	list, err := s.List(ctx, acct, ListFilters{UserID: userID})
	if err != nil {
		return nil, err
	}
	stats := &Stats{ByCategory: make(map[string]int)}
	now := time.Now()
	for _, e := range list {
		stats.Total++
		switch e.ExtendedProps.Status {
		case StatusInProgress:
			stats.InProgress++
		case StatusDone, StatusFinalizado:
			stats.Done++
		case StatusUrgent, StatusUrgente:
			stats.Urgent++
		}
		category := e.ExtendedProps.Calendar
		if category == "" {
			category = "Sem categoria"
		}
		stats.ByCategory[category]++
		if e.Start.After(now) {
			stats.Upcoming++
		}
	}
	return stats, nil
}

// CanScheduleForOthers reports whether the caller's role allows assigning
// events to other users.
func CanScheduleForOthers(role ability.Role) bool {
	return role.Level() >= ability.RoleCoordenador.Level()
}

// buildPayload normalizes dates and ownership into the wire payload the
// backend expects.
func (s *Service) buildPayload(acct *shared.Account, in EventInput) (map[string]any, error) {
	start, err := ParseBRDate(in.Start, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", shared.ErrValidation, err)
	}
	payload := map[string]any{
		"title":       strings.TrimSpace(in.Title),
		"description": in.Description,
		"start":       start.Format(time.RFC3339),
		"allDay":      in.AllDay,
		"url":         in.URL,
	}
	if in.End != "" {
		end, err := ParseBRDate(in.End, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: end: %v", shared.ErrValidation, err)
		}
		payload["end"] = end.Format(time.RFC3339)
	}

	props := in.ExtendedProps
	if props.Calendar == "" {
		props.Calendar = CalendarMeeting
	}
	if props.Status == "" {
		props.Status = StatusInProgress
	}

	assigned := in.AssignedUserID
	if assigned != nil && *assigned != acct.UserData.ID {
		if !CanScheduleForOthers(acct.UserData.ParsedRole()) {
			return nil, fmt.Errorf("%w: role cannot schedule for other users", shared.ErrForbidden)
		}
	}
	if assigned != nil {
		payload["assignedUserId"] = *assigned
		props.AssignedUser = assigned
	}
	payload["extendedProps"] = props
	return payload, nil
}

func currentRef(acct *shared.Account) hierarchy.UserRef {
	return hierarchy.UserRef{
		ID:            acct.UserData.ID,
		Role:          acct.UserData.ParsedRole(),
		SupervisorID:  acct.UserData.SupervisorID,
		CoordenadorID: acct.UserData.CoordenadorID,
	}
}
