package usecase

import (
	"starter-kit/internal/data/repository"
	"starter-kit/internal/session"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(repo *repository.Repository, issuer session.Issuer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo.User, issuer, config, log),
		User: NewUserService(repo.User, log),
	}
}
