package routes

import (
	"context"
	"net/http"
	"time"

	"mitche/backend/internal/api"
	"mitche/backend/internal/db"
	"mitche/backend/internal/logging"
	"mitche/backend/internal/metrics"
	"mitche/backend/internal/middleware"
	"mitche/backend/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "X-User-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Redis, upSince))

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Background refresh of leaderboard snapshots
	workers.InitWorkers(
		context.Background(),
		db.PgDB,
		metricsReg,
		deps.Repo.Snapshot,
	)

	// Register API routes
	RegisterAPIRoutes(r, metricsReg, handlers, deps)

	return r
}
