package middleware

import (
	"net/http"

	"mitche/backend/internal/auth"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db/repositories"
	"mitche/backend/internal/metrics"
	"mitche/backend/internal/permissions"
)

// RequirePermission gates a route on a capability. The full user record is
// loaded so special per-user grants are honored, not just the role in the
// claims. Denial is a 403, never a 500.
func RequirePermission(
	manager *permissions.Manager,
	userRepo *repositories.UserRepository,
	metricsReg *metrics.MetricsRegistry,
	perm constants.Permission,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := userRepo.GetByID(r.Context(), claims.UserID())
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !manager.HasPermission(user, perm) {
				metricsReg.PermissionDeniedTotal.WithLabelValues(perm.String()).Inc()
				http.Error(w, "Forbidden. Missing permission: "+perm.String(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin short-circuits on the role in the claims; admin-only routes
// do not need the full user record.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || claims.Role() != constants.RoleAdmin {
				http.Error(w, "Forbidden. Admin role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
