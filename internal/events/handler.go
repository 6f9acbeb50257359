package events

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/audit"
	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// ExportStatus reports where an asynchronous CSV export stands.
type ExportStatus struct {
	ID    string `json:"id"`
	State string `json:"state"`
	File  string `json:"file,omitempty"`
	Count int    `json:"count,omitempty"`
	Error string `json:"error,omitempty"`
}

// Exporter enqueues CSV export jobs and reports their progress. The jobs
// package provides the production implementation.
type Exporter interface {
	Enqueue(ctx context.Context, acct *shared.Account, req ExportRequest) (string, error)
	Status(ctx context.Context, jobID string) (*ExportStatus, error)
}

// Handler manages calendar event endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     guard.Middleware
	exporter  Exporter
	audit     *audit.Logger
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, g guard.Middleware, exporter Exporter, auditor *audit.Logger) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     g,
		exporter:  exporter,
		audit:     auditor,
		validator: validator.New(),
	}
}

// MountRoutes registers event routes. Every role's manage grant on the
// calendar is record-conditioned, so the route gate only checks calendar
// access; the service enforces ownership on the concrete record.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(guard.RouteMeta{Action: ability.ActionRead, Subject: ability.SubjectCalendar}))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Get("/stats", h.stats)
		r.Get("/stats/{userId}", h.stats)
		r.Post("/export", h.export)
		r.Get("/export/{jobId}", h.exportStatus)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	filters := ListFilters{Calendars: r.URL.Query().Get("calendars")}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "userId must be an integer")
			return
		}
		filters.UserID = id
	}
	list, err := h.service.List(r.Context(), acct, filters)
	if err != nil {
		h.logger.Error("list events", slog.Any("error", err))
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
	e, err := h.service.Get(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var in EventInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	e, err := h.service.Create(r.Context(), acct, in)
	if err != nil {
		h.logger.Error("create event", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	var in EventInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	e, err := h.service.Update(r.Context(), acct, id, in)
	if err != nil {
		h.logger.Error("update event", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), acct, id); err != nil {
		h.logger.Error("delete event", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var id int64
	if chi.URLParam(r, "userId") != "" {
		var err error
		id, err = pathID(r, "userId")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "userId must be an integer")
			return
		}
	}
	stats, err := h.service.StatsFor(r.Context(), acct, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	acct := shared.AccountFromContext(r.Context())
	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	jobID, err := h.exporter.Enqueue(r.Context(), acct, req)
	if err != nil {
		h.logger.Error("enqueue export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if err := h.audit.Record(r.Context(), audit.Entry{
		ActorID: acct.UserData.ID,
		Action:  audit.ActionExportRequested,
		Detail:  map[string]any{"jobId": jobID},
	}); err != nil {
		h.logger.Warn("audit export request", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

func (h *Handler) exportStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.exporter.Status(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
