package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/ukp-platform/ukp-api/internal/api"
	apiMiddleware "github.com/ukp-platform/ukp-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	if origins := app.config.App().CORSOrigins; len(origins) > 0 {
		r.Use(corsHandler(origins))
	}

	strategy, err := app.authn.Default()
	if err != nil {
		// newApplication always registers the local strategy.
		panic(err)
	}
	authMiddleware := apiMiddleware.NewAuthMiddleware(strategy)

	healthHandler := api.NewHealthHandler(app.health, app.logger)
	authHandler := api.NewAuthHandler(app.authn, app.auditTrail, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	r.Get("/", api.HelloHandler)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Route(apiBase(app.config.App().APIPrefix), func(r chi.Router) {
		r.Get("/health/config", healthHandler.Config)
		r.Get("/health/detailed", healthHandler.Detailed)

		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Post("/users", userHandler.CreateUser)
			r.Get("/users/{id}", userHandler.GetUser)
		})
	})

	return r
}

// apiBase turns a sanitized prefix into a route pattern.
func apiBase(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
