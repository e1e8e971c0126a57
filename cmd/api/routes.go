package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(middleware.RealIP)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)

	router.Group(func(router chi.Router) {
		router.Use(app.authenticate)

		router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

		// Player Endpoints
		router.Route("/v1/players", func(router chi.Router) {
			router.Post("/", app.InsertPlayer)
			router.Get("/", app.GetAllPlayers)

			router.Route("/{id}", func(router chi.Router) {
				router.Get("/", app.GetPlayer)
				router.Patch("/", app.UpdatePlayer)

				router.Get("/dashboard", app.GetDashboard)
				router.Get("/games", app.GetGameHistory)
				router.Get("/card", app.GetCard)
				router.Post("/card/share", app.ShareCard)

				router.Get("/schedule", app.GetSchedule)
				router.Post("/schedule", app.AddScheduledGame)
				router.Post("/schedule/import", app.ImportSchedule)
				router.Delete("/schedule/{gameID}", app.RemoveScheduledGame)
			})
		})

		// Tracking Endpoints
		router.Route("/v1/tracking", func(router chi.Router) {
			router.Post("/", app.StartTracking)
			router.Get("/{id}", app.GetTracking)
			router.Patch("/{id}", app.UpdateTracking)
			router.Delete("/{id}", app.CancelTracking)
			router.Post("/{id}/events", app.TrackEvent)
			router.Post("/{id}/finalize", app.FinalizeTracking)
			router.Get("/{id}/keep", app.KeepTracking)
			router.Get("/{id}/watch", app.WatchTracking)
		})

		// Settings
		router.Get("/v1/settings", app.GetSettings)
		router.Put("/v1/settings", app.UpdateSettings)
	})

	return router
}
