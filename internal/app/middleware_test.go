package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

func newStackRouter(t *testing.T) chi.Router {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := shared.NewSessionManager(client, "painel_session", "secret", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         logger,
		SessionManager: sm,
		CSRFManager:    shared.NewCSRFManager("csrf-secret"),
	}) {
		r.Use(mw)
	}

	r.Get("/seed", func(w http.ResponseWriter, req *http.Request) {
		sess := shared.SessionFromContext(req.Context())
		require.NoError(t, sess.SetAccount(shared.Account{
			AccessToken: "token",
			UserData:    shared.Identity{ID: 7, Role: "vendedor"},
		}))
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/fail", func(w http.ResponseWriter, req *http.Request) {
		// Stands in for any handler surfacing a backend 401.
		httpx.RespondError(w, shared.ErrUnauthenticated)
	})
	r.Get("/boom", func(w http.ResponseWriter, req *http.Request) {
		httpx.RespondError(w, shared.ErrUpstream)
	})
	r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
		sess := shared.SessionFromContext(req.Context())
		if sess.Account() == nil {
			_, _ = w.Write([]byte("anon"))
			return
		}
		_, _ = w.Write([]byte("auth"))
	})
	return r
}

func doGet(router chi.Router, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUnauthorizedResponseClearsAccount(t *testing.T) {
	router := newStackRouter(t)

	seed := doGet(router, "/seed", nil)
	require.Equal(t, http.StatusOK, seed.Code)
	cookies := seed.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec := doGet(router, "/whoami", cookies)
	require.Equal(t, "auth", rec.Body.String())

	// An upstream-style 401 must drop the stored account, so the
	// revoked token cannot keep the session in a half-dead state.
	rec = doGet(router, "/fail", cookies)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doGet(router, "/whoami", cookies)
	assert.Equal(t, "anon", rec.Body.String())
}

func TestNonAuthFailureKeepsAccount(t *testing.T) {
	router := newStackRouter(t)

	seed := doGet(router, "/seed", nil)
	require.Equal(t, http.StatusOK, seed.Code)
	cookies := seed.Result().Cookies()

	rec := doGet(router, "/boom", cookies)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = doGet(router, "/whoami", cookies)
	assert.Equal(t, "auth", rec.Body.String())
}
