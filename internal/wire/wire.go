// internal/wire/wire.go
package wire

import (
	"context"

	"starter-kit/internal/adaptor"
	"starter-kit/internal/data/repository"
	"starter-kit/internal/session"
	"starter-kit/internal/usecase"
	"starter-kit/pkg/middleware"
	"starter-kit/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Deps are the long-lived resources built in main.
type Deps struct {
	Repo   *repository.Repository
	Issuer session.Issuer
	Checks []adaptor.DependencyCheck
	Config *utils.Config
	Logger *zap.Logger
}

// Wiring builds services, handlers and the router. Background workers owned
// by the router stop when ctx is cancelled.
func Wiring(ctx context.Context, deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Issuer, deps.Config, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Config, deps.Logger)
	health := adaptor.NewHealthHandler(deps.Checks...)

	router := setupRouter(ctx, handler, health, deps)

	return &App{
		Router: router,
	}
}

func setupRouter(ctx context.Context, handler *adaptor.Handler, health *adaptor.HealthHandler, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(deps.Config.Security.TrustProxy))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.CORS(deps.Config.Security.AllowedOrigins, deps.Config.App.Debug))

	r.Get("/health", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(deps.Issuer, deps.Config.Session.CookieName, deps.Logger))

		wireAuth(ctx, r, handler.Auth, deps.Config, deps.Logger)
		wireUser(r, handler.User, deps.Logger)
	})

	return r
}
