package middleware

import (
	"net/http"
	"strings"

	"mitche/backend/internal/auth"
	"mitche/backend/internal/common"
	"mitche/backend/internal/db/repositories"
)

// AuthMiddleware resolves the caller's identity from either a session token
// (web client) or an API key plus acting-user header (trusted integrations)
// and stores claims in the request context.
func AuthMiddleware(
	sessionSvc *common.SessionService,
	userRepo *repositories.UserRepository,
	keysRepo *repositories.KeysRepo,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				sessionID := strings.TrimPrefix(authHeader, "Bearer ")

				session, err := sessionSvc.GetSession(r.Context(), sessionID)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}

				claims = &auth.SessionClaims{
					UserUUID:  session.UserID,
					RoleValue: session.Role,
					SessionID: session.SessionID,
				}

			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				actingUserID := r.Header.Get("X-User-Id")
				user, err := userRepo.GetByID(r.Context(), actingUserID)
				if err != nil {
					http.Error(w, "Unauthorized. Unknown acting user", http.StatusUnauthorized)
					return
				}

				claims = &auth.APIKeyClaims{
					UserUUID:  user.ID,
					RoleValue: user.UserRole,
					KeyLabel:  keyRes.Label,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
