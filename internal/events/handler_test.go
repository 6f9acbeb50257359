package events

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/shared"
)

func newEventsRouter(t *testing.T, repo *mockRepository) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, vendedorDirectory(), logger, time.UTC)
	h := NewHandler(logger, svc, guard.Middleware{Logger: logger}, nil, nil)

	r := chi.NewRouter()
	r.Route("/api/events", h.MountRoutes)
	return r
}

func sessionFor(t *testing.T, acct *shared.Account) *shared.Session {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NoError(t, sess.SetAccount(*acct))
	return sess
}

func serveAs(t *testing.T, router chi.Router, sess *shared.Session, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesVendedorCreatesOwnEvent(t *testing.T) {
	repo := eventFixture()
	router := newEventsRouter(t, repo)
	sess := sessionFor(t, acctFor(10, "vendedor"))

	rec := serveAs(t, router, sess, http.MethodPost, "/api/events",
		`{"title":"Reunião nova","start":"25/12/2025 09:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(10), repo.lastPayload["userId"])
}

func TestRoutesEveryRoleReachesEventWrites(t *testing.T) {
	// The write routes gate on calendar access, which every role holds;
	// ownership of specific records is checked in the service.
	for _, role := range []string{"user", "vendedor", "coordenador", "supervisor", "diretor"} {
		repo := eventFixture()
		router := newEventsRouter(t, repo)
		sess := sessionFor(t, acctFor(50, role))

		rec := serveAs(t, router, sess, http.MethodPost, "/api/events",
			`{"title":"Planejamento","start":"2025-12-01T10:00:00Z"}`)
		assert.Equal(t, http.StatusCreated, rec.Code, "role %s: %s", role, rec.Body.String())
	}
}

func TestRoutesVendedorCannotEditOthersEvent(t *testing.T) {
	router := newEventsRouter(t, eventFixture())
	sess := sessionFor(t, acctFor(10, "vendedor"))

	// Event 2 belongs to user 11.
	rec := serveAs(t, router, sess, http.MethodPut, "/api/events/2",
		`{"title":"Tomada de conta","start":"25/12/2025 09:00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoutesVendedorDeletesOwnEvent(t *testing.T) {
	repo := eventFixture()
	router := newEventsRouter(t, repo)
	sess := sessionFor(t, acctFor(10, "vendedor"))

	rec := serveAs(t, router, sess, http.MethodDelete, "/api/events/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, exists := repo.events[1]
	assert.False(t, exists)
}

func TestRoutesUnauthenticatedIs401(t *testing.T) {
	router := newEventsRouter(t, eventFixture())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sm := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	rec := serveAs(t, router, sess, http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
