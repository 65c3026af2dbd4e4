package api

import (
	"net/http"
	"time"

	"mitche/backend/internal/common"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/db"
	"mitche/backend/internal/models/dtos"
	"mitche/backend/internal/models/entities"
	gormModels "mitche/backend/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// ReconciliationReport handles GET /api/v1/admin/reconciliation
//
// @Summary      Ledger drift report
// @Description  Compares per-receiver ledger sums against the denormalized user totals and lists every receiver that has drifted.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Router       /api/v1/admin/reconciliation [get]
func (h *Handlers) ReconciliationReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var totals []entities.LedgerTotal
		if err := db.DB.SelectContext(r.Context(), &totals, constants.GetLedgerTotalsByReceiver); err != nil {
			common.RespondError(w, initTime, err, "Failed to sum ledger", http.StatusInternalServerError)
			return
		}

		var users []gormModels.User
		err := db.PgDB.WithContext(r.Context()).
			Select("id", "hope_points").
			Find(&users).Error
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load user totals", http.StatusInternalServerError)
			return
		}
		recorded := make(map[string]int64, len(users))
		for i := range users {
			recorded[users[i].ID] = users[i].HopePoints
		}

		drifted := make([]dtos.ReconciliationRow, 0)
		for _, t := range totals {
			if t.Total == recorded[t.ReceiverID] {
				continue
			}
			drifted = append(drifted, dtos.ReconciliationRow{
				ReceiverID:  t.ReceiverID,
				LedgerTotal: t.Total,
				Recorded:    recorded[t.ReceiverID],
				Drift:       recorded[t.ReceiverID] - t.Total,
			})
		}

		common.RespondSuccess(w, initTime, "Reconciliation report built", drifted)
	}
}

// ReconcileUser handles GET /api/v1/admin/users/{user_id}/reconcile
//
// @Summary      Single-user ledger check
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/admin/users/{user_id}/reconcile [get]
func (h *Handlers) ReconcileUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.deps.Repo.User.GetByID(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, constants.StatusUserNotFound, http.StatusNotFound)
			return
		}

		total, err := h.deps.Repo.Ledger.TotalForReceiver(r.Context(), user.ID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to sum ledger", http.StatusInternalServerError)
			return
		}

		row := dtos.ReconciliationRow{
			ReceiverID:  user.ID,
			LedgerTotal: total,
			Recorded:    user.HopePoints,
			Drift:       user.HopePoints - total,
		}
		common.RespondSuccess(w, initTime, "User reconciled", row)
	}
}
