package forms

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Handler manages form and response endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   guard.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, g guard.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: g}
}

// MountRoutes registers form routes. Definition management is restricted to
// admin roles; answering forms only needs a session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(guard.RouteMeta{AdminRequired: true}))
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
		r.Post("/{id}/duplicate", h.duplicate)
		r.Get("/{id}/responses", h.formResponses)
		r.Get("/{id}/stats", h.stats)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(guard.RouteMeta{}))
		r.Get("/available", h.available)
		r.Get("/{id}", h.show)
		r.Get("/responses/my", h.myResponses)
		r.Get("/responses/{id}", h.showResponse)
		r.Post("/responses/draft", h.saveDraft)
		r.Post("/responses", h.submit)
		r.Put("/responses/{id}", h.updateResponse)
		r.Delete("/responses/{id}", h.removeResponse)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	list, err := h.service.List(r.Context(), acct)
	if err != nil {
		h.logger.Error("list forms", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
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

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	f, err := h.service.Get(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var in FormInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	f, err := h.service.Create(r.Context(), acct, in)
	if err != nil {
		h.logger.Error("create form", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	var in FormInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	f, err := h.service.Update(r.Context(), acct, id, in)
	if err != nil {
		h.logger.Error("update form", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), acct, id); err != nil {
		h.logger.Error("delete form", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) duplicate(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	f, err := h.service.Duplicate(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	stats, err := h.service.Stats(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) myResponses(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	list, err := h.service.MyResponses(r.Context(), acct)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) formResponses(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	list, err := h.service.FormResponses(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) showResponse(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	resp, err := h.service.GetResponse(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var in ResponseInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	resp, err := h.service.SaveDraft(r.Context(), acct, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var in ResponseInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	resp, err := h.service.Submit(r.Context(), acct, in)
	if err != nil {
		h.logger.Error("submit form response", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) updateResponse(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	var in ResponseInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	resp, err := h.service.UpdateResponse(r.Context(), acct, id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) removeResponse(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	if err := h.service.DeleteResponse(r.Context(), acct, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
