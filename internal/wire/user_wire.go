package wire

import (
	"starter-kit/internal/adaptor"
	"starter-kit/internal/data/entity"
	"starter-kit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user routes. Admin access is decided by the role in
// the session token.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	log *zap.Logger,
) {
	r.With(middleware.RequireAuth).Get("/api/user/profile", userHandler.Profile)

	r.With(
		middleware.RequireAuth,
		middleware.RequireRole(string(entity.RoleAdmin), log),
	).Get("/api/admin/users", userHandler.ListUsers)
}
