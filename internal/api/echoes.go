package api

import (
	"encoding/json"
	"net/http"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/models/dtos"
	gormModels "mitche/backend/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

func toEchoResponse(echo *gormModels.Echo) dtos.EchoResponse {
	return dtos.EchoResponse{
		ID:          echo.ID,
		AuthorID:    echo.AuthorID,
		Title:       echo.Title,
		Description: echo.Description,
		Category:    echo.Category,
		Location:    echo.Location,
		Status:      string(echo.Status),
		Offerings:   len(echo.Offerings),
		CreatedAt:   echo.CreatedAt,
	}
}

// CreateEcho handles POST /api/v1/echoes
//
// @Summary      Post a help request
// @Description  Creates a new echo authored by the calling user.
// @Tags         Echoes
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateEchoRequest  true  "Echo payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Router       /api/v1/echoes [post]
func (h *Handlers) CreateEcho() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateEchoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		echo, err := h.deps.Services.Echo.CreateEcho(r.Context(), user, req.Title, req.Description, req.Category, req.Location)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create echo")
			return
		}

		h.deps.Services.Cache.Delete(echoListingCacheKey)

		resp := toEchoResponse(echo)
		common.RespondSuccess(w, initTime, constants.StatusEchoCreated, resp, http.StatusCreated)
	}
}

const echoListingCacheKey = string(constants.CachePrefixEchoListing) + "open"

// ListEchoes handles GET /api/v1/echoes
//
// @Summary      List open echoes
// @Tags         Echoes
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/echoes [get]
func (h *Handlers) ListEchoes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if cached, found := h.cacheGet("echo_listing", echoListingCacheKey); found {
			if resp, ok := cached.([]dtos.EchoResponse); ok {
				common.RespondSuccess(w, initTime, "Echoes fetched", resp)
				return
			}
		}

		echoes, err := h.deps.Repo.Echo.ListOpen(r.Context(), 50)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list echoes", http.StatusInternalServerError)
			return
		}

		resp := make([]dtos.EchoResponse, 0, len(echoes))
		for i := range echoes {
			resp = append(resp, toEchoResponse(&echoes[i]))
		}
		h.deps.Services.Cache.Set(echoListingCacheKey, resp, 15*time.Second)
		common.RespondSuccess(w, initTime, "Echoes fetched", resp)
	}
}

// GetEcho handles GET /api/v1/echoes/{echo_id}
//
// @Summary      Fetch one echo with its offerings
// @Tags         Echoes
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/echoes/{echo_id} [get]
func (h *Handlers) GetEcho() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		echo, err := h.deps.Repo.Echo.GetByID(r.Context(), chi.URLParam(r, "echo_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, constants.StatusEchoNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Echo fetched", toEchoResponse(echo))
	}
}

// AddOffering handles POST /api/v1/echoes/{echo_id}/offerings
//
// @Summary      Respond to an echo
// @Description  Records an offering of help or encouragement against an open echo.
// @Tags         Echoes
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateOfferingRequest  true  "Offering payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      403  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/echoes/{echo_id}/offerings [post]
func (h *Handlers) AddOffering() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateOfferingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		kind := constants.OfferingKind(req.Kind)
		if kind != constants.OfferingHelp && kind != constants.OfferingEncouragement {
			common.RespondError(w, initTime, nil, "Unknown offering kind", http.StatusBadRequest)
			return
		}

		offering, err := h.deps.Services.Echo.AddOffering(r.Context(), user, chi.URLParam(r, "echo_id"), kind, req.Message)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to record offering")
			return
		}

		resp := dtos.OfferingResponse{
			ID:        offering.ID,
			EchoID:    offering.EchoID,
			HelperID:  offering.HelperID,
			Kind:      string(offering.Kind),
			Message:   offering.Message,
			CreatedAt: offering.CreatedAt,
		}
		common.RespondSuccess(w, initTime, constants.StatusOfferingCreated, resp, http.StatusCreated)
	}
}

// ModerateEchoClose handles POST /api/v1/moderation/echoes/{echo_id}/close
//
// @Summary      Close an echo (moderation)
// @Description  Closes an echo on behalf of the community. The caller must outrank the echo's author.
// @Tags         Moderation
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      403  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/moderation/echoes/{echo_id}/close [post]
func (h *Handlers) ModerateEchoClose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		moderator, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := h.deps.Services.Echo.CloseEcho(r.Context(), moderator, chi.URLParam(r, "echo_id")); err != nil {
			respondServiceError(w, initTime, err, "Failed to close echo")
			return
		}

		common.RespondSuccess(w, initTime, "Echo closed", nil)
	}
}

// WeaveTapestry handles POST /api/v1/tapestry
//
// @Summary      Weave a tapestry thread
// @Description  Records a commemorative story honoring another user. Requires the weave capability.
// @Tags         Tapestry
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.WeaveTapestryRequest  true  "Thread payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      403  {object}  dtos.APIResponse
// @Router       /api/v1/tapestry [post]
func (h *Handlers) WeaveTapestry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.currentUser(r)
		if err != nil {
			common.RespondError(w, initTime, nil, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req dtos.WeaveTapestryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		thread, err := h.deps.Services.Echo.WeaveTapestryThread(r.Context(), user, req.HonoreeID, req.Title, req.Story, req.Color)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to weave thread")
			return
		}

		common.RespondSuccess(w, initTime, "Thread woven", thread, http.StatusCreated)
	}
}
