package routes

import (
	"mitche/backend/internal/api"
	"mitche/backend/internal/constants"
	"mitche/backend/internal/metrics"
	"mitche/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	manager := deps.Manager
	userRepo := deps.Repo.User

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Services.Session, userRepo, deps.Repo.Keys)) // global: all routes must be authenticated

		// Reads open to every authenticated caller
		v1.Get("/echoes", handlers.ListEchoes())
		v1.Get("/echoes/{echo_id}", handlers.GetEcho())
		v1.Get("/leaderboard", handlers.Leaderboard())
		v1.Get("/achievements", handlers.ListAchievements())
		v1.Get("/users/me/dashboard", handlers.Dashboard())
		v1.Get("/users/{user_id}/profile", handlers.Profile())
		v1.Post("/identity/validate", handlers.ValidateIdentity())
		v1.Post("/verification/request", handlers.RequestVerification())

		// Session lifecycle (API-key callers mint, session callers end)
		v1.Post("/auth/session", handlers.CreateSession())
		v1.Delete("/auth/session", handlers.DeleteSession())

		// Capability-gated writes
		v1.Group(func(create chi.Router) {
			create.Use(middleware.RequirePermission(manager, userRepo, metricsReg, constants.PermCreateRequest))
			create.Post("/echoes", handlers.CreateEcho())
		})

		v1.Group(func(respond chi.Router) {
			respond.Use(middleware.RequirePermission(manager, userRepo, metricsReg, constants.PermRespondToRequest))
			respond.Post("/echoes/{echo_id}/offerings", handlers.AddOffering())
			respond.Post("/hope/grant", handlers.GrantHopePoints())
		})

		v1.Group(func(moderate chi.Router) {
			moderate.Use(middleware.RequirePermission(manager, userRepo, metricsReg, constants.PermModerateContent))
			moderate.Post("/moderation/echoes/{echo_id}/close", handlers.ModerateEchoClose())
		})

		v1.Group(func(weave chi.Router) {
			weave.Use(middleware.RequirePermission(manager, userRepo, metricsReg, constants.PermWeaveTapestry))
			weave.Post("/tapestry", handlers.WeaveTapestry())
		})

		// Admin-only group
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin())

			admin.Post("/admin/users/{user_id}/role", handlers.SetRole())
			admin.Post("/admin/users/{user_id}/verification", handlers.SetVerification())
			admin.Post("/admin/verification/review", handlers.ReviewVerification())
			admin.Get("/admin/reconciliation", handlers.ReconciliationReport())
			admin.Get("/admin/users/{user_id}/reconcile", handlers.ReconcileUser())
		})
	})
}
