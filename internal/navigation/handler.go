package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Handler serves the menu tree pruned to the caller's abilities.
type Handler struct {
	logger *slog.Logger
	guard  guard.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, g guard.Middleware) *Handler {
	return &Handler{logger: logger, guard: g}
}

// MountRoutes registers the navigation route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Require(guard.RouteMeta{})).Get("/", h.menu)
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	eval := ability.NewEvaluator(acct.Abilities(), h.logger)
	items := Prune(Default(), func(action, subject string) bool {
		return eval.Can(action, subject, nil)
	})
	httpx.JSON(w, http.StatusOK, items)
}
