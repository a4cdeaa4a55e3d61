package adaptor

import (
	"errors"
	"net/http"

	"starter-kit/internal/dto/request"
	"starter-kit/internal/usecase"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Profile handles GET /api/user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	switch {
	case err == nil:
		utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.ResponseNotFound(w, "User not found")
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Authentication required")
	default:
		h.log.Error("Profile lookup failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// ListUsers handles GET /api/admin/users?page=&per_page=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := request.PageFromQuery(q.Get("page"), q.Get("per_page"))

	users, err := h.service.ListUsers(r.Context(), page)
	if err != nil {
		h.log.Error("User listing failed", zap.Error(err), zap.Int("page", page.Page))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}
