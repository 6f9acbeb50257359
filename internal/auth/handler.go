package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/audit"
	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *shared.SessionManager
	audit     *audit.Logger
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, auditLog *audit.Logger) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		audit:     auditLog,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type sessionResponse struct {
	UserData     shared.Identity `json:"userData"`
	AbilityRules []ability.Rule  `json:"abilityRules"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "email and password are required")
		return
	}

	acct, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if err := sess.SetAccount(acct); err != nil {
		h.logger.Error("store account", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	if err := h.audit.Record(r.Context(), audit.Entry{
		ActorID: acct.UserData.ID,
		Action:  audit.ActionLogin,
		Detail:  map[string]any{"role": acct.UserData.Role, "ip": r.RemoteAddr},
	}); err != nil {
		h.logger.Warn("audit login", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, sessionResponse{
		UserData:     acct.UserData,
		AbilityRules: acct.Abilities().Rules(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if acct := sess.Account(); acct != nil {
			if err := h.audit.Record(r.Context(), audit.Entry{
				ActorID: acct.UserData.ID,
				Action:  audit.ActionLogout,
			}); err != nil {
				h.logger.Warn("audit logout", slog.Any("error", err))
			}
		}
		sess.ClearAccount()
		h.sessions.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	acct := sess.Account()
	if acct == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{
		UserData:     acct.UserData,
		AbilityRules: acct.Abilities().Rules(),
	})
}
