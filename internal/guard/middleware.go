package guard

import (
	"log/slog"
	"net/http"

	"github.com/painel-crm/painel-crm/internal/platform/httpx"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Middleware applies route metadata to the gateway's own HTTP routes.
type Middleware struct {
	Logger *slog.Logger
	// TokenExpired reports whether the stored access token is no longer
	// valid. A nil func skips the check.
	TokenExpired func(token string) bool
}

// Require enforces the route metadata. Redirects map onto status codes for
// the JSON surface: login becomes 401, not-authorized becomes 403; the
// problem type carries the redirect target.
func (g Middleware) Require(meta RouteMeta) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			acct := sess.Account()
			if acct != nil && g.TokenExpired != nil && g.TokenExpired(acct.AccessToken) {
				// Token invalidation destroys the account, forcing
				// re-authentication.
				sess.ClearAccount()
				acct = nil
			}

			decision := Decide(acct, meta)
			if decision.State == StateAllowed {
				next.ServeHTTP(w, r)
				return
			}
			if g.Logger != nil {
				g.Logger.Debug("navigation redirected",
					slog.String("path", r.URL.Path),
					slog.String("target", string(decision.Target)))
			}
			switch decision.Target {
			case TargetNotAuthorized:
				httpx.JSON(w, http.StatusForbidden, httpx.ProblemDetail{
					Type:   string(TargetNotAuthorized),
					Title:  "Forbidden",
					Status: http.StatusForbidden,
				})
			default:
				httpx.JSON(w, http.StatusUnauthorized, httpx.ProblemDetail{
					Type:   string(TargetLogin),
					Title:  "Unauthorized",
					Status: http.StatusUnauthorized,
				})
			}
		})
	}
}
