package identity

import (
	"log/slog"
	"net/http"

	"assignment-service/internal/httputil"
	"assignment-service/internal/user"
)

// Middleware resolves the actor for every request and stores it in the
// request context. Resolution failures are logged and leave the request
// anonymous rather than failing it.
func Middleware(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolver.Resolve(r)
			if err != nil {
				logger.WarnContext(r.Context(), "actor resolution failed", "error", err)
			}
			if actor != nil {
				r = r.WithContext(WithActor(r.Context(), actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a route on exact role equality. There is no role
// hierarchy: a teacher is not permitted where a student is required, and
// vice versa.
func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				httputil.RespondWithError(w, http.StatusForbidden, "forbidden: user not authenticated")
				return
			}
			if actor.Role != role {
				httputil.RespondWithError(w, http.StatusForbidden, "forbidden: insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
