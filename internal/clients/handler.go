package clients

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Handler manages client record endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     guard.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, g guard.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: g, validator: validator.New()}
}

// MountRoutes registers client routes. The read routes carry no ability
// gate: vendedor's client access is record-conditioned and a route has no
// record to check, so visibility is scoped per record in the service
// instead. Writes still require an unconditioned manage grant.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(guard.RouteMeta{}))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Get("/available", h.available)
		r.Get("/vendedor/{id}", h.bySalesperson)
		r.Get("/vendedor/{id}/count", h.countBySalesperson)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(guard.RouteMeta{Action: ability.ActionManage, Subject: ability.SubjectClients}))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	filters := ListFilters{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	list, err := h.service.List(r.Context(), acct, filters)
	if err != nil {
		h.logger.Error("list clients", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// The calendar widgets fetch the whole list; the table view asks for
	// pages.
	if r.URL.Query().Get("page") == "" {
		httpx.JSON(w, http.StatusOK, list)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	p := shared.NewPagination(page, perPage, len(list))
	start, end := p.Bounds()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       list[start:end],
		"pagination": p,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	c, err := h.service.Get(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var req CreateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Create(r.Context(), acct, req)
	if err != nil {
		h.logger.Error("create client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	var req UpdateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Update(r.Context(), acct, id, req)
	if err != nil {
		h.logger.Error("update client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), acct, id); err != nil {
		h.logger.Error("delete client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	list, err := h.service.Available(r.Context(), acct)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) bySalesperson(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	list, err := h.service.BySalesperson(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) countBySalesperson(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	count, err := h.service.CountBySalesperson(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
