package api

import (
	"encoding/json"
	"net/http"
	"time"

	"mitche/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server and its backing stores are reachable.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db *sqlx.DB, redisClient *redis.Client, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		// Check postgres
		pgstatus := "ok"
		pgDetails := "Postgres Connected"
		if err := db.Ping(); err != nil {
			pgstatus = "down"
			pgDetails = err.Error()
		}
		services["postgres"] = entities.ServiceStatus{
			Status:  pgstatus,
			Details: pgDetails,
		}

		// Check redis; sessions and the hot cache degrade without it but the
		// API stays up
		redisStatus := "ok"
		redisDetails := "Redis Connected"
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			redisStatus = "down"
			redisDetails = err.Error()
		}
		services["redis"] = entities.ServiceStatus{
			Status:  redisStatus,
			Details: redisDetails,
		}

		overallStatus := "ok"
		if services["postgres"].Status != "ok" {
			overallStatus = "down"
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
