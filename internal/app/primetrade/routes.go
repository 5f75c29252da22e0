package primetrade

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация документации swagger.
	_ "github.com/magabrotheeeer/primetrade/docs"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/admin/setactive"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/dashboard/overview"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/dashboard/stats"
	"github.com/magabrotheeeer/primetrade/internal/http/handlers/health"
	"github.com/magabrotheeeer/primetrade/internal/http/middlewarectx"
	"github.com/magabrotheeeer/primetrade/internal/metrics"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
	"github.com/magabrotheeeer/primetrade/internal/services/dashboard"
)

// Services зависимости маршрутов.
type Services struct {
	Auth      *auth.AuthService
	Dashboard *dashboard.Service
	Metrics   *metrics.Metrics
	Limiter   *rate.Limiter
	DB        health.Pinger // может быть nil
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		s.Metrics.Middleware,
	)

	healthHandler := health.New(logger, s.DB)
	r.Get("/", healthHandler.Index())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			// Открытые конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger, s.Limiter))
				r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
				r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
				r.Get("/me", me.New(logger).ServeHTTP)
				r.Put("/profile", profile.New(logger, s.Auth).ServeHTTP)
				r.Post("/logout", logout.New(logger, s.Auth).ServeHTTP)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Get("/dashboard", overview.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/stats", stats.New(logger, s.Dashboard).ServeHTTP)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.AdminOnly(logger))
			r.Patch("/users/{id}/active", setactive.New(logger, s.Auth).ServeHTTP)
		})
	})

	r.Handle("/metrics", s.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
