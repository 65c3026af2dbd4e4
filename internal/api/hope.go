package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/models/dtos"
)

// GrantHopePoints handles POST /api/v1/hope/grant
//
// @Summary      Grant hope points
// @Description  Appends a ledger entry and credits the receiver, applying the actor's role multiplier.
// @Tags         HopePoints
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.GrantHopePointsRequest  true  "Grant payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/hope/grant [post]
func (h *Handlers) GrantHopePoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.GrantHopePointsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Ledger.Grant(r.Context(), user, req.ReceiverID, req.Category, req.Amount, req.Reason)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to grant points")
			return
		}

		resp := dtos.GrantResponse{
			LedgerEntryID: result.EntryID,
			ReceiverID:    result.ReceiverID,
			Category:      result.Category,
			BaseAmount:    result.BaseAmount,
			Multiplier:    result.Multiplier,
			Granted:       result.Granted,
		}
		common.RespondSuccess(w, initTime, constants.StatusPointsGranted, resp, http.StatusCreated)
	}
}

// Leaderboard handles GET /api/v1/leaderboard
//
// @Summary      Community leaderboard
// @Description  Returns the top-ranked snapshot rows. Results are briefly cached.
// @Tags         HopePoints
// @Produce      json
// @Param        limit  query  int  false  "Row count (default 20, max 100)"
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/leaderboard [get]
func (h *Handlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		if limit > 100 {
			limit = 100
		}

		resp, err := h.deps.Services.Leaderboard.Top(r.Context(), limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Leaderboard fetched", resp)
	}
}

// ListAchievements handles GET /api/v1/achievements
//
// @Summary      Achievement catalog
// @Tags         HopePoints
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/achievements [get]
func (h *Handlers) ListAchievements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		catalog, err := h.deps.Repo.Achievement.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch achievements", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Achievements fetched", catalog)
	}
}
