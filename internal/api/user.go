package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// Dashboard handles GET /api/v1/users/me/dashboard
//
// @Summary      Per-user dashboard
// @Description  Returns the caller's feature set, analytics tier, trust score, multiplier, and point aggregates.
// @Tags         Users
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/users/me/dashboard [get]
func (h *Handlers) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		cacheKey := fmt.Sprintf("%s%s", constants.CachePrefixDashboard, user.ID)
		if cached, found := h.cacheGet("dashboard", cacheKey); found {
			if resp, ok := cached.(dtos.DashboardResponse); ok {
				common.RespondSuccess(w, initTime, "Dashboard fetched", resp)
				return
			}
		}

		resp := h.deps.Services.User.DashboardFor(user)
		h.deps.Services.Cache.Set(cacheKey, resp, 30*time.Second)
		common.RespondSuccess(w, initTime, "Dashboard fetched", resp)
	}
}

// Profile handles GET /api/v1/users/{user_id}/profile
//
// @Summary      Public profile
// @Description  Returns the pseudonymous profile card: name, badges, pillars, and point totals.
// @Tags         Users
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/users/{user_id}/profile [get]
func (h *Handlers) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		userID := chi.URLParam(r, "user_id")
		cacheKey := fmt.Sprintf("%s%s", constants.CachePrefixUserProfile, userID)
		if cached, found := h.cacheGet("user_profile", cacheKey); found {
			if resp, ok := cached.(dtos.UserProfileResponse); ok {
				common.RespondSuccess(w, initTime, "Profile fetched", resp)
				return
			}
		}

		user, err := h.deps.Repo.User.GetByID(r.Context(), userID)
		if err != nil {
			common.RespondError(w, initTime, nil, constants.StatusUserNotFound, http.StatusNotFound)
			return
		}

		resp := dtos.UserProfileResponse{
			UserID:        user.ID,
			SymbolicName:  user.SymbolicName,
			SymbolicIcon:  user.SymbolicIcon,
			Role:          user.UserRole.String(),
			IsVerified:    user.IsVerified,
			HopePoints:    user.HopePoints,
			Badges:        user.Badges,
			Pillars:       user.Pillars,
			EchoCount:     user.EchoCount,
			TapestryCount: user.TapestryCount,
		}
		h.deps.Services.Cache.Set(cacheKey, resp, 60*time.Second)
		common.RespondSuccess(w, initTime, "Profile fetched", resp)
	}
}

// ValidateIdentity handles POST /api/v1/identity/validate
//
// @Summary      Validate a symbolic name
// @Description  Checks shape, reserved words, and availability. Invalid names return a result, not an error.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.ValidateIdentityRequest  true  "Candidate name"
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/identity/validate [post]
func (h *Handlers) ValidateIdentity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ValidateIdentityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result := h.deps.Services.Identity.ValidateSymbolicName(r.Context(), req.SymbolicName)
		common.RespondSuccess(w, initTime, "Validation complete", result)
	}
}

// RequestVerification handles POST /api/v1/verification/request
//
// @Summary      Request account verification
// @Description  Moves an NGO or PublicWorker account to Pending and returns a signed review link.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.VerificationRequest  true  "Supporting details"
// @Success      200  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/verification/request [post]
func (h *Handlers) RequestVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.VerificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		link, err := h.deps.Services.User.RequestVerification(r.Context(), user, req.OrganizationName, req.DocumentURL)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to request verification")
			return
		}

		data := map[string]interface{}{
			"review_link": link,
			"status":      string(constants.VerificationPending),
		}
		common.RespondSuccess(w, initTime, "Verification requested", data)
	}
}

// ReviewVerification handles POST /api/v1/admin/verification/review
//
// @Summary      Resolve a verification request via its review link
// @Description  Validates and burns the single-use review token, then applies the decision.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.ReviewVerificationRequest  true  "Review decision"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/admin/verification/review [post]
func (h *Handlers) ReviewVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		admin, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.ReviewVerificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		userID, err := h.deps.Services.User.ReviewVerification(r.Context(), admin, req.Token, constants.VerificationStatus(req.Status))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to resolve verification review")
			return
		}

		data := map[string]interface{}{
			"user_id": userID,
			"status":  req.Status,
		}
		common.RespondSuccess(w, initTime, "Verification review resolved", data)
	}
}

// SetRole handles POST /api/v1/admin/users/{user_id}/role
//
// @Summary      Change a user's role
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.SetRoleRequest  true  "New role"
// @Success      200  {object}  dtos.APIResponse
// @Failure      403  {object}  dtos.APIResponse
// @Router       /api/v1/admin/users/{user_id}/role [post]
func (h *Handlers) SetRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		admin, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.SetRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		targetID := chi.URLParam(r, "user_id")
		if err := h.deps.Services.User.SetRole(r.Context(), admin, targetID, constants.Role(req.Role)); err != nil {
			respondServiceError(w, initTime, err, "Failed to update role")
			return
		}

		common.RespondSuccess(w, initTime, "Role updated", nil)
	}
}

// SetVerification handles POST /api/v1/admin/users/{user_id}/verification
//
// @Summary      Resolve a verification request
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.SetVerificationRequest  true  "Resolution"
// @Success      200  {object}  dtos.APIResponse
// @Failure      403  {object}  dtos.APIResponse
// @Router       /api/v1/admin/users/{user_id}/verification [post]
func (h *Handlers) SetVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		admin, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.SetVerificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		targetID := chi.URLParam(r, "user_id")
		if err := h.deps.Services.User.SetVerification(r.Context(), admin, targetID, constants.VerificationStatus(req.Status)); err != nil {
			respondServiceError(w, initTime, err, "Failed to update verification")
			return
		}

		common.RespondSuccess(w, initTime, "Verification updated", nil)
	}
}
