package usecase

import (
	"context"
	"fmt"

	"starter-kit/internal/data/repository"
	"starter-kit/internal/dto/request"
	"starter-kit/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService exposes read-only views of stored accounts. Password hashes
// never leave this layer.
type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	ListUsers(ctx context.Context, page request.PageRequest) (*response.Page[response.UserResponse], error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// Profile loads the account behind an authenticated session. A session whose
// user has since disappeared yields ErrUserNotFound.
func (us *userService) Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to load profile", zap.Error(err), zap.Stringer("user_id", userID))
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		us.log.Warn("Session refers to a missing user", zap.Stringer("user_id", userID))
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ListUsers(ctx context.Context, page request.PageRequest) (*response.Page[response.UserResponse], error) {
	page.Normalize()
	fields := []zap.Field{zap.Int("page", page.Page), zap.Int("per_page", page.PerPage)}

	users, err := us.userRepo.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		us.log.Error("Failed to list users", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToResponse(user))
	}

	us.log.Debug("Users listed", append(fields, zap.Int("count", len(items)), zap.Int64("total", total))...)
	return response.NewPage(items, page.Page, page.PerPage, total), nil
}
