package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starter-kit/internal/data/entity"
	"starter-kit/internal/data/repository"
	"starter-kit/internal/dto/request"
	"starter-kit/internal/dto/response"
	"starter-kit/internal/session"
	"starter-kit/pkg/metrics"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

// RegisterSuccessMessage is returned to the caller after a user is created.
const RegisterSuccessMessage = "Success!"

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.MessageResponse, error)
	Authorize(ctx context.Context, email, password string) (*session.Identity, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Session(ctx context.Context, raw string) (*session.Session, error)
	Refresh(ctx context.Context, raw string) (*response.LoginResponse, error)
	SignOut(ctx context.Context, raw string) error
	SignOutAll(ctx context.Context, userID string) error
	RoleOptions() []response.RoleOption
}

type authService struct {
	userRepo repository.UserRepository
	issuer   session.Issuer
	config   *utils.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	issuer session.Issuer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

func (s *authService) sessionTTL() time.Duration {
	return time.Duration(s.config.Session.TTLHours) * time.Hour
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.MessageResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultValidation).Inc()
		return nil, err
	}

	email := utils.MaskEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ErrPersistenceFailure
	}
	if existing != nil {
		s.log.Info("Registration rejected, email taken", zap.String("email", email))
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
		return nil, ErrDuplicateUser
	}

	start := time.Now()
	hash, err := utils.HashPassword(req.Password, s.config.Security.HashCost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ErrPersistenceFailure
	}

	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Email:        req.Email,
		PasswordHash: &hash,
		Name:         req.Name,
		Role:         entity.UserRole(req.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.Info("Registration lost insert race", zap.String("email", email))
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			return nil, ErrDuplicateUser
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ErrPersistenceFailure
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return &response.MessageResponse{Message: RegisterSuccessMessage}, nil
}

// Authorize verifies an email/password pair. Every failure returns
// ErrInvalidCredentials; the actual reason is only logged.
func (s *authService) Authorize(ctx context.Context, email, password string) (*session.Identity, error) {
	masked := utils.MaskEmail(email)

	if email == "" || password == "" {
		s.log.Warn("Authorize rejected, missing credentials", zap.String("email", masked))
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Authorize failed, user lookup error", zap.Error(err), zap.String("email", masked))
		return nil, ErrInvalidCredentials
	}
	if user == nil {
		s.log.Warn("Authorize failed, user not found", zap.String("email", masked))
		return nil, ErrInvalidCredentials
	}

	start := time.Now()
	ok := utils.CheckPasswordHash(password, user.StoredHash())
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	if !ok {
		s.log.Warn("Authorize failed, incorrect password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return &session.Identity{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err), zap.String("email", utils.MaskEmail(req.Email)))
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultValidation).Inc()
		return nil, ErrInvalidCredentials
	}

	identity, err := s.Authorize(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
		return nil, err
	}

	token := session.MintToken(*identity, s.now(), s.sessionTTL())
	raw, err := s.issuer.Issue(ctx, token)
	if err != nil {
		s.log.Error("Failed to issue session", zap.Error(err), zap.String("user_id", identity.ID))
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", identity.ID))
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return s.loginResponse(raw, token), nil
}

// Session projects the token behind raw. Missing, expired and revoked
// tokens report ErrUnauthenticated.
func (s *authService) Session(ctx context.Context, raw string) (*session.Session, error) {
	token, err := s.resolve(ctx, raw)
	if err != nil {
		return nil, err
	}

	projected := session.ProjectSession(*token)
	return &projected, nil
}

// Refresh swaps a live token for one with a fresh expiry. The old token is
// revoked once the new one is issued.
func (s *authService) Refresh(ctx context.Context, raw string) (*response.LoginResponse, error) {
	token, err := s.resolve(ctx, raw)
	if err != nil {
		return nil, err
	}

	refreshed := session.Refresh(*token, s.now(), s.sessionTTL())
	newRaw, err := s.issuer.Issue(ctx, refreshed)
	if err != nil {
		s.log.Error("Failed to issue refreshed session", zap.Error(err), zap.String("user_id", token.Subject))
		return nil, fmt.Errorf("issue session: %w", err)
	}

	if err := s.issuer.Revoke(ctx, raw); err != nil && !errors.Is(err, session.ErrInvalidToken) {
		s.log.Warn("Failed to revoke refreshed session", zap.Error(err), zap.String("user_id", token.Subject))
	}

	return s.loginResponse(newRaw, refreshed), nil
}

// SignOut revokes raw. Signing out an unknown or already revoked token is
// not an error.
func (s *authService) SignOut(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	err := s.issuer.Revoke(ctx, raw)
	if errors.Is(err, session.ErrInvalidToken) {
		return nil
	}
	if err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	metrics.SessionsRevokedTotal.Inc()
	s.log.Info("User signed out")
	return nil
}

func (s *authService) SignOutAll(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.issuer.RevokeAll(ctx, userID); err != nil {
		s.log.Error("Failed to revoke all sessions", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("revoke all sessions: %w", err)
	}

	metrics.SessionsRevokedTotal.Inc()
	s.log.Info("User signed out everywhere", zap.String("user_id", userID))
	return nil
}

func (s *authService) RoleOptions() []response.RoleOption {
	return response.RoleOptions(entity.Roles)
}

func (s *authService) resolve(ctx context.Context, raw string) (*session.Token, error) {
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	token, err := s.issuer.Resolve(ctx, raw)
	if errors.Is(err, session.ErrInvalidToken) {
		s.log.Debug("Session token rejected", zap.Error(err))
		return nil, ErrUnauthenticated
	}
	if err != nil {
		s.log.Error("Failed to resolve session", zap.Error(err))
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	return token, nil
}

func (s *authService) loginResponse(raw string, token session.Token) *response.LoginResponse {
	return &response.LoginResponse{
		Token:      raw,
		ExpiresAt:  token.ExpiresAt,
		RedirectTo: s.config.App.DefaultRoute,
	}
}
