package wire

import (
	"context"

	"starter-kit/internal/adaptor"
	"starter-kit/pkg/middleware"
	"starter-kit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func wireAuth(
	ctx context.Context,
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	loginLimiter := middleware.NewIPRateLimiter("login", rate.Limit(config.Security.LoginRate), config.Security.LoginBurst, log)
	registerLimiter := middleware.NewIPRateLimiter("register", rate.Limit(config.Security.LoginRate), config.Security.LoginBurst, log)
	go loginLimiter.Run(ctx)
	go registerLimiter.Run(ctx)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(registerLimiter.Middleware).Post("/register", authHandler.Register)
		r.With(loginLimiter.Middleware).Post("/login", authHandler.Login)

		r.Get("/session", authHandler.Session)
		r.Get("/roles", authHandler.Roles)
		r.Post("/signout", authHandler.SignOut)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/session/refresh", authHandler.Refresh)
			r.Post("/signout/all", authHandler.SignOutAll)
		})
	})
}
