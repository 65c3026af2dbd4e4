package api

import (
	"errors"
	"net/http"
	"time"

	"mitche/backend/internal/auth"
	"mitche/backend/internal/common"
	"mitche/backend/internal/services"
	gormModels "mitche/backend/internal/models/gorm"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// currentUser loads the full user record for the authenticated caller.
func (h *Handlers) currentUser(r *http.Request) (*gormModels.User, error) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		return nil, errors.New("missing claims")
	}
	return h.deps.Repo.User.GetByID(r.Context(), claims.UserID())
}

// cacheGet wraps the hot-cache lookup with hit/miss accounting per cache
// name.
func (h *Handlers) cacheGet(name, key string) (interface{}, bool) {
	value, found := h.deps.Services.Cache.Get(key)
	if h.deps.Metrics != nil {
		if found {
			h.deps.Metrics.CacheHitsTotal.WithLabelValues(name).Inc()
		} else {
			h.deps.Metrics.CacheMissesTotal.WithLabelValues(name).Inc()
		}
	}
	return value, found
}

// respondServiceError maps business rejections to their 4xx codes and
// everything else to a 500.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error, fallback string) {
	var echoErr *services.EchoError
	if errors.As(err, &echoErr) {
		common.RespondError(w, initTime, echoErr, echoErr.Message, echoErr.Code)
		return
	}
	var userErr *services.UserError
	if errors.As(err, &userErr) {
		common.RespondError(w, initTime, userErr, userErr.Message, userErr.Code)
		return
	}
	var grantErr *services.GrantError
	if errors.As(err, &grantErr) {
		common.RespondError(w, initTime, grantErr, grantErr.Message, http.StatusBadRequest)
		return
	}
	common.RespondError(w, initTime, err, fallback, http.StatusInternalServerError)
}
