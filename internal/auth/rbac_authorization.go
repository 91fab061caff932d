package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/internal/user"
	"github.com/go-chi/chi"
)

type RBACAuthorization struct {
	*transport.BaseHandler
	policy *Policy
	logger *slog.Logger
}

func NewRBACAuthorization(policy *Policy, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		policy:      policy,
		logger:      logger,
	}
}

// Middleware evaluates the capability table against the matched chi route.
// It must wrap endpoint handlers (Group/With) so the route pattern is known.
func (ra *RBACAuthorization) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			ra.check(w, r, next, func(role user.Role) bool {
				return ra.policy.Authorize(role, r.Method, pattern)
			}, "pattern", pattern)
		})
	}
}

// RequireRole guards a single route with an explicit role set.
func (ra *RBACAuthorization) RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	rule := Rule{Roles: roles}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ra.check(w, r, next, rule.allows, "required_roles", roles)
		})
	}
}

func (ra *RBACAuthorization) check(w http.ResponseWriter, r *http.Request, next http.Handler, allowed func(user.Role) bool, attrs ...any) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		ra.logger.WarnContext(r.Context(), "authorization check failed: user not found in context")
		ra.WriteAppError(w, internal.ErrUnauthorized)
		return
	}

	role := user.Role(internal.RoleFromContext(r.Context()))
	if !allowed(role) {
		args := append([]any{"user_id", userID, "role", role, "method", r.Method}, attrs...)
		ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions", args...)
		ra.WriteAppError(w, internal.ErrForbidden)
		return
	}

	next.ServeHTTP(w, r)
}
