package response

import (
	"time"

	"starter-kit/internal/data/entity"
)

// MessageResponse is the body of a successful registration.
type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	RedirectTo string    `json:"redirect_to"`
}

type RoleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func RoleOptions(roles []entity.UserRole) []RoleOption {
	options := make([]RoleOption, len(roles))
	for i, role := range roles {
		options[i] = RoleOption{Value: string(role), Label: role.Label()}
	}
	return options
}
