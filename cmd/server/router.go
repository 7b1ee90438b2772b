package main

import (
	"context"
	"net/http"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/api"
	apiMiddleware "github.com/dreis/minhasfinancas-api/internal/api/middleware"
	"github.com/dreis/minhasfinancas-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.authService, app.jwtService, app.logger)
	entryHandler := api.NewEntryHandler(app.entryService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/authenticate", userHandler.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/entries", entryHandler.Create)
			r.Get("/entries", entryHandler.Search)
			r.Put("/entries/{id}", entryHandler.Update)
			r.Delete("/entries/{id}", entryHandler.Delete)
			r.Put("/entries/{id}/status", entryHandler.UpdateStatus)
		})
	})

	r.Get("/health", app.health)

	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

// health reports 200 while the database answers a ping and 503 otherwise.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Driver: app.config.Database.Driver}
	status := http.StatusOK
	if err := app.backend.DB.PingContext(ctx); err != nil {
		app.logger.Error("health check database ping failed", "error", err)
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	shared.RespondWithJSON(w, r, status, resp)
}
