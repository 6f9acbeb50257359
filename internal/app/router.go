package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/painel-crm/painel-crm/internal/auth"
	"github.com/painel-crm/painel-crm/internal/clients"
	"github.com/painel-crm/painel-crm/internal/events"
	"github.com/painel-crm/painel-crm/internal/forms"
	"github.com/painel-crm/painel-crm/internal/navigation"
	"github.com/painel-crm/painel-crm/internal/observability"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/users"
	"github.com/painel-crm/painel-crm/jobs"
	"github.com/painel-crm/painel-crm/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler       *auth.Handler
	UsersHandler      *users.Handler
	ClientsHandler    *clients.Handler
	EventsHandler     *events.Handler
	FormsHandler      *forms.Handler
	NavigationHandler *navigation.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router for the gateway.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The SPA fetches its CSRF token here before any mutating call.
	r.Get("/api/csrf", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			params.Logger.Error("ensure csrf token", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not issue token")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"csrfToken": token})
	})

	r.Route("/api/auth", params.AuthHandler.MountRoutes)
	r.Route("/api/users", params.UsersHandler.MountRoutes)
	r.Route("/api/clients", params.ClientsHandler.MountRoutes)
	r.Route("/api/events", params.EventsHandler.MountRoutes)
	r.Route("/api/forms", params.FormsHandler.MountRoutes)
	r.Route("/api/navigation", params.NavigationHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	mountStatic(r, params.Logger)

	return r
}

// mountStatic serves the dashboard bundle and falls back to index.html for
// client-side routes.
func mountStatic(r chi.Router, logger *slog.Logger) {
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
		return
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	r.Handle("/static/*", staticCacheHandler(fileServer))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet || strings.HasPrefix(req.URL.Path, "/api/") {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no such route")
			return
		}
		index, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no such route")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	})
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets (JS, CSS, fonts, images) are cached for 1 hour in browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
