package api

import (
	"net/http"
	"time"

	"mitche/backend/internal/auth"
	"mitche/backend/internal/common"
)

// CreateSession handles POST /api/v1/auth/session
//
// @Summary      Mint a session token
// @Description  Issues a Redis-backed bearer session for the calling user. Used by trusted integrations exchanging an API key for a session.
// @Tags         Auth
// @Produce      json
// @Success      201  {object}  dtos.APIResponse
// @Router       /api/v1/auth/session [post]
func (h *Handlers) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		sessionID, err := h.deps.Services.Session.CreateSession(r.Context(), user.ID, user.SymbolicName, user.UserRole)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create session", http.StatusInternalServerError)
			return
		}

		data := map[string]interface{}{
			"session_token": sessionID,
			"token_type":    "Bearer",
		}
		common.RespondSuccess(w, initTime, "Session created", data, http.StatusCreated)
	}
}

// DeleteSession handles DELETE /api/v1/auth/session
//
// @Summary      End the current session
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/auth/session [delete]
func (h *Handlers) DeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims, ok := auth.GetUserClaims(r.Context()).(*auth.SessionClaims)
		if !ok {
			common.RespondError(w, initTime, nil, "Only session callers can log out", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Session.DeleteSession(r.Context(), claims.SessionID); err != nil {
			common.RespondError(w, initTime, err, "Failed to end session", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Session ended", nil)
	}
}
